package entity

// ProfileAnalysisInput is free-text profile content already assembled by the caller.
type ProfileAnalysisInput struct {
	ProfileText string `json:"profile_text"`
}

type AnalysisResult struct {
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}

type Phase struct {
	Title      string   `json:"title"`
	Milestones []string `json:"milestones"`
}

// RoadmapResult is serialized under the "roadmap" key, the shape the generation prompt requests.
type RoadmapResult struct {
	Phases []Phase `json:"roadmap"`
}

type ResourceType string

const (
	ResourceTypeArticle             ResourceType = "Article"
	ResourceTypeVideo               ResourceType = "Video"
	ResourceTypeInteractiveTutorial ResourceType = "Interactive Tutorial"
	ResourceTypeDocumentation       ResourceType = "Documentation"
	ResourceTypeCourse              ResourceType = "Course"
)

// ResourceTypes lists the allowed resource types in prompt order.
var ResourceTypes = []ResourceType{
	ResourceTypeArticle,
	ResourceTypeVideo,
	ResourceTypeInteractiveTutorial,
	ResourceTypeDocumentation,
	ResourceTypeCourse,
}

func (t ResourceType) Valid() bool {
	for _, allowed := range ResourceTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

type Resource struct {
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Type        ResourceType `json:"type"`
	Description string       `json:"description"`
}

// ResourceSetSize is the exact number of resources recommended per milestone.
const ResourceSetSize = 3

type ResourceSet struct {
	Resources []Resource `json:"resources"`
}

type ResourceInput struct {
	Milestone string `json:"milestone"`
}
