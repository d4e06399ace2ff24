package domain

// DomainInfo describes one fixed exam content area.
type DomainInfo struct {
	// Name is the human-readable domain name.
	Name string
	// Total is the fixed question-bank size for the domain.
	Total int
}

// Catalog maps domain identifiers to their reference data. It is supplied
// once at initialization and never mutated by the engine.
type Catalog map[string]DomainInfo

// Fixed NBHWC exam content areas.
const (
	DomainCoachingStructure = "coaching-structure"
	DomainCoachingProcess   = "coaching-process"
	DomainHealthWellness    = "health-wellness"
	DomainEthicsLegal       = "ethics-legal"
)

// DefaultCatalog returns the four fixed exam domains with their question
// bank sizes.
func DefaultCatalog() Catalog {
	return Catalog{
		DomainCoachingStructure: {Name: "Coaching Structure", Total: 500},
		DomainCoachingProcess:   {Name: "Coaching Process", Total: 1200},
		DomainHealthWellness:    {Name: "Health & Wellness", Total: 575},
		DomainEthicsLegal:       {Name: "Ethics & Legal", Total: 350},
	}
}

// Has reports whether the catalog contains the domain identifier.
func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}
