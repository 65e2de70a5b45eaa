package module

import (
	"time"

	"skillreel/internal/services/moderation/domain"
)

// Ports holds the ports exposed by the moderation module
type Ports struct {
	Service domain.ServicePort
	Worker  domain.WorkerPort
	Policy  PolicyPort
}

// PolicyPort reports the active decision policy
type PolicyPort interface {
	Policy() Policy
}

// Policy describes the threshold, timeout and skill list currently in force
type Policy struct {
	SkillConfidenceThreshold float64       `json:"skill_confidence_threshold" example:"0.6"`
	ProviderTimeout          time.Duration `json:"provider_timeout_ns" example:"20000000000"`
	TaxonomyVersion          int           `json:"taxonomy_version" example:"1"`
	Skills                   []string      `json:"skills"`
	SafetyProvider           string        `json:"safety_provider" example:"openai"`
	SkillProvider            string        `json:"skill_provider" example:"openai"`
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
