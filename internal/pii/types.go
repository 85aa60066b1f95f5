package pii

import "regexp"

// Type labels a category of personally identifiable information.
type Type string

const (
	TypeAadhar     Type = "AADHAR"
	TypePAN        Type = "PAN"
	TypeCreditCard Type = "CREDIT_CARD"
	TypePhone      Type = "PHONE"
	TypeEmail      Type = "EMAIL"

	// Labels below are never produced by the pattern matcher; they come from
	// the semantic detector or downstream heuristics.
	TypePassport    Type = "PASSPORT"
	TypePerson      Type = "PERSON"
	TypeDateTime    Type = "DATE_TIME"
	TypeBloodGroup  Type = "BLOOD_GROUP"
	TypeVoterID     Type = "VOTER_ID"
	TypeLicense     Type = "LICENSE"
	TypeBankAccount Type = "BANK_ACCOUNT"
)

// Results maps a PII type to the instances detected for it. A key is present
// only when it has at least one instance.
type Results map[Type][]string

// Catalog is the immutable lookup table the matcher, scorer and report
// formatter share. Build one with DefaultCatalog; the zero value is unusable.
type Catalog struct {
	patterns     []patternEntry
	displayNames map[Type]string
	weights      map[Type]int
	highRisk     map[Type]bool
}

type patternEntry struct {
	label   Type
	pattern *regexp.Regexp
}

var (
	aadharPattern     = regexp.MustCompile(`\b[2-9][0-9]{3}\s[0-9]{4}\s[0-9]{4}\b`)
	panPattern        = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	creditCardPattern = regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`)
	phonePattern      = regexp.MustCompile(`\b(?:\+91|0)?[6-9][0-9]{9}\b`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// DefaultCatalog returns the standard catalog: Indian identity documents,
// payment cards and contact details.
func DefaultCatalog() *Catalog {
	return &Catalog{
		patterns: []patternEntry{
			{TypeAadhar, aadharPattern},
			{TypePAN, panPattern},
			// Intentionally loose: any 13-16 digit run, with optional space
			// or hyphen separators. No Luhn check, so long numeric IDs match
			// too. Tightening this would change detection recall.
			{TypeCreditCard, creditCardPattern},
			{TypePhone, phonePattern},
			{TypeEmail, emailPattern},
		},
		displayNames: map[Type]string{
			TypeAadhar:     "Aadhaar Card",
			TypePAN:        "PAN Card",
			TypeCreditCard: "Credit Card",
			TypePhone:      "Phone Number",
			TypeEmail:      "Email Address",
			TypePassport:   "Passport Number",
			TypePerson:     "Person Name",
			TypeDateTime:   "Date of Birth/Time",
			TypeBloodGroup: "Blood Group",
		},
		weights: map[Type]int{
			TypeAadhar:     10,
			TypePAN:        8,
			TypeCreditCard: 9,
			TypePassport:   10,
			TypePhone:      5,
			TypeEmail:      4,
			TypePerson:     3,
			TypeDateTime:   2,
			TypeBloodGroup: 6,
		},
		highRisk: map[Type]bool{
			TypeAadhar:     true,
			TypePAN:        true,
			TypeCreditCard: true,
			TypePassport:   true,
		},
	}
}

// DisplayName returns the human-readable label for a type, or the raw label
// when the type is not in the catalog.
func (c *Catalog) DisplayName(t Type) string {
	if name, ok := c.displayNames[t]; ok {
		return name
	}
	return string(t)
}

// Weight returns the risk weight for a type. Unlisted types weigh 1.
func (c *Catalog) Weight(t Type) int {
	if w, ok := c.weights[t]; ok {
		return w
	}
	return 1
}

// IsHighRisk reports whether exposure of the type triggers compliance
// obligations.
func (c *Catalog) IsHighRisk(t Type) bool {
	return c.highRisk[t]
}

// PatternTypes returns the pattern-backed type labels in catalog order.
func (c *Catalog) PatternTypes() []Type {
	types := make([]Type, 0, len(c.patterns))
	for _, e := range c.patterns {
		types = append(types, e.label)
	}
	return types
}
