package analytics

import (
	"fmt"
	"strings"
)

// Summary groups the global metrics of a network.
type Summary struct {
	Users       int      `json:"users"`
	Follows     int      `json:"follows"`
	MostPopular string   `json:"most_popular"`
	TopFollower string   `json:"top_follower"`
	Leaders     []string `json:"leaders"`
	Density     float64  `json:"density"`
	Reciprocity float64  `json:"reciprocity"`
}

// Summarize computes all the global metrics of the network, using share as the leader share.
func Summarize(net Network, share float64) (Summary, error) {
	var s Summary
	var err error

	s.Users = net.Len()
	s.Follows = net.EdgeCount()

	if s.MostPopular, err = MostPopular(net); err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}

	if s.TopFollower, err = TopFollower(net); err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}

	if s.Leaders, err = Leaders(net, share); err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}

	if s.Leaders == nil {
		s.Leaders = []string{}
	}

	if s.Density, err = Density(net); err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}

	if s.Reciprocity, err = Reciprocity(net); err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}

	return s, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("Network:\n"+
		"\tUsers: %d\n"+
		"\tFollows: %d\n"+
		"\tMostPopular: %s\n"+
		"\tTopFollower: %s\n"+
		"\tLeaders: [%s]\n"+
		"\tDensity: %v\n"+
		"\tReciprocity: %v\n",
		s.Users, s.Follows, s.MostPopular, s.TopFollower,
		strings.Join(s.Leaders, ", "), s.Density, s.Reciprocity)
}
