package domain

// Service is one trade or activity a business offers.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Location is one service area a business covers.
type Location struct {
	ID     string `json:"id"`
	City   string `json:"city"`
	Region string `json:"region,omitempty"`
}

// Technician is one roster entry shown on generated pages.
type Technician struct {
	Name           string   `json:"name"`
	Title          string   `json:"title,omitempty"`
	YearsExp       int      `json:"years_experience,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// Project is one showcase entry.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	LocationID  string `json:"location_id,omitempty"`
}

// Testimonial is one customer quote.
type Testimonial struct {
	Author string  `json:"author"`
	Quote  string  `json:"quote"`
	Rating float64 `json:"rating,omitempty"`
}

// BusinessContext is the aggregate snapshot of one business used as the
// variable source for a generation run. It is loaded once per run and treated
// as read-only afterwards; consumers get copies via Clone.
type BusinessContext struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email,omitempty"`
	Website      string        `json:"website,omitempty"`
	YearsInTrade int           `json:"years_in_trade,omitempty"`
	Services     []Service     `json:"services"`
	Locations    []Location    `json:"locations"`
	Technicians  []Technician  `json:"technicians,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
	Rating       float64       `json:"rating,omitempty"`
	ReviewCount  int           `json:"review_count,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate the loader's snapshot.
func (bc *BusinessContext) Clone() *BusinessContext {
	if bc == nil {
		return nil
	}
	cp := *bc
	cp.Services = append([]Service(nil), bc.Services...)
	cp.Locations = append([]Location(nil), bc.Locations...)
	cp.Technicians = append([]Technician(nil), bc.Technicians...)
	cp.Projects = append([]Project(nil), bc.Projects...)
	cp.Testimonials = append([]Testimonial(nil), bc.Testimonials...)
	return &cp
}

// ServiceByID returns the service with the given id, if present.
func (bc *BusinessContext) ServiceByID(id string) (Service, bool) {
	for _, s := range bc.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// LocationByID returns the location with the given id, if present.
func (bc *BusinessContext) LocationByID(id string) (Location, bool) {
	for _, l := range bc.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// CompetitionLevel describes local keyword competition for a page spec.
type CompetitionLevel string

// Competition levels as reported by market signal sources.
const (
	CompetitionLow    CompetitionLevel = "low"
	CompetitionMedium CompetitionLevel = "medium"
	CompetitionHigh   CompetitionLevel = "high"
)

// MarketSignals are the inputs to the value-scoring policy for one spec.
type MarketSignals struct {
	// MonthlySearchVolume is the estimated monthly searches for the
	// service+location keyword.
	MonthlySearchVolume int `json:"monthly_search_volume"`
	// Competition is the local keyword competition level.
	Competition CompetitionLevel `json:"competition"`
	// MoneyPage marks high-conversion service+location joins.
	MoneyPage bool `json:"money_page"`
}
