package util

import (
	"fmt"
	"math/rand"
	"time"
)

// Players may join a room without picking a display name; they get one of
// these instead.

var adjectives = []string{
	"Lucky", "Sneaky", "Bold", "Quiet", "Quick", "Patient", "Daring", "Clever",
	"Smiling", "Grumpy", "Fearless", "Cautious", "Sly", "Brave", "Curious",
	"Dashing", "Gentle", "Wild", "Steady", "Swift",
}

var animals = []string{
	"Fox", "Owl", "Badger", "Otter", "Lynx", "Raven", "Hare", "Mole",
	"Heron", "Stoat", "Wolf", "Bear", "Crane", "Finch", "Viper",
	"Tortoise", "Magpie", "Weasel", "Falcon", "Marmot",
}

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[random.Intn(len(adjectives))], animals[random.Intn(len(animals))])
}
