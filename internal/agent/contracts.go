package agent

import (
	"github.com/futig/career-agent/internal/entity"
	"github.com/futig/career-agent/internal/pkg/contract"
)

var analysisContract = contract.New("profile analysis",
	contract.MinLength("analysis", 10),
	contract.Array("suggestions", 1, 5),
	contract.MinLength("suggestions[]", 5),
)

// Phase and milestone counts are requested by the prompt but not enforced.
var roadmapContract = contract.New("roadmap",
	contract.Array("roadmap", 0, contract.Unbounded),
	contract.Object("roadmap[]"),
	contract.String("roadmap[].title"),
	contract.Array("roadmap[].milestones", 0, contract.Unbounded),
	contract.String("roadmap[].milestones[]"),
)

var resourceContract = contract.New("resources",
	contract.Array("resources", entity.ResourceSetSize, entity.ResourceSetSize),
	contract.Object("resources[]"),
	contract.String("resources[].title"),
	contract.URL("resources[].url"),
	contract.OneOf("resources[].type", resourceTypeNames()...),
	contract.String("resources[].description"),
)

func resourceTypeNames() []string {
	names := make([]string, len(entity.ResourceTypes))
	for i, t := range entity.ResourceTypes {
		names[i] = string(t)
	}
	return names
}
