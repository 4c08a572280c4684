package domain

const (
	StatusNew     = "new"
	DefaultSource = "website"
)

// TimestampLayout is the fixed-width ISO-8601 form every createdAt value uses.
// Lexicographic order of these strings matches chronological order, which the
// listing sort relies on.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Booking is one customer service-appointment request, persisted as a single
// line of the record store. All submission fields are strings; optional ones
// are empty rather than omitted so every stored line carries the full shape.
type Booking struct {
	ID            string `json:"id"`
	CreatedAt     string `json:"createdAt"`
	Source        string `json:"source"`
	Status        string `json:"status"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactMethod string `json:"contactMethod"`
	Year          string `json:"year"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	PreferredDate string `json:"preferredDate"`
	TimeWindow    string `json:"timeWindow"`
	ServiceType   string `json:"serviceType"`
	Concern       string `json:"concern"`
	VisitType     string `json:"visitType"`
	Urgency       string `json:"urgency"`
}

// ServiceTypes is the fixed set of service labels the booking form offers.
var ServiceTypes = []string{
	"Oil change / maintenance",
	"Brake inspection / repair",
	"Check engine light diagnosis",
	"Battery / charging issue",
	"Steering / suspension concern",
	"Noise / vibration concern",
	"Pre-trip / seasonal inspection",
	"General diagnosis / other",
}

var serviceTypeSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ServiceTypes))
	for _, s := range ServiceTypes {
		set[s] = struct{}{}
	}
	return set
}()

func IsAllowedServiceType(s string) bool {
	_, ok := serviceTypeSet[s]
	return ok
}
