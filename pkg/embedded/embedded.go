package embedded

import (
	_ "embed"
)

// Worked examples used by the one-shot and multi-shot strategies
//
//go:embed data/examples/pet_fitness_tracker.txt
var PetFitnessTrackerExampleTxt []byte

//go:embed data/examples/blockchain_land_registry.txt
var BlockchainLandRegistryExampleTxt []byte

//go:embed data/examples/vr_museum_tours.txt
var VRMuseumToursExampleTxt []byte

// Mentor persona sent as the system segment of the system/user strategy
//
//go:embed data/prompts/mentor_system_prompt.txt
var MentorSystemPromptTxt []byte
