package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageDashboard = "dashboard"
	PageEvents    = "events"
	PageEvent     = "event" // event detail view
	PageVenues    = "venues"
	PageVenue     = "venue"
	PageTickets   = "tickets"
	PageMenu      = "menu"
	PageWizard    = "wizard" // event creation wizard
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard: "dashboard-content",
	PageEvents:    "events-content",
	PageEvent:     "event-content",
	PageVenues:    "venues-content",
	PageVenue:     "venue-content",
	PageTickets:   "tickets-content",
	PageMenu:      "menu-content",
	PageWizard:    "wizard-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
