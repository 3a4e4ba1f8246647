package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Replacement is one entry of an ordered phrase table. Tables are
// ordered slices, not maps: analyzer output and reviser edits must be
// reproducible run to run.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Contractions maps formal phrases to their contracted forms
// (Microsoft style: contractions read friendlier).
var Contractions = []Replacement{
	{"cannot", "can't"},
	{"do not", "don't"},
	{"will not", "won't"},
	{"should not", "shouldn't"},
	{"would not", "wouldn't"},
	{"could not", "couldn't"},
	{"it is", "it's"},
	{"you are", "you're"},
	{"you will", "you'll"},
	{"we are", "we're"},
	{"let us", "let's"},
	{"that is", "that's"},
	{"there is", "there's"},
	{"what is", "what's"},
}

// VerbosePhrases maps wordy phrases to concise alternatives. An empty
// replacement means the phrase is filler and gets removed.
var VerbosePhrases = []Replacement{
	{"in order to", "to"},
	{"due to the fact that", "because"},
	{"in the event that", "if"},
	{"at this point in time", "now"},
	{"at this time", "now"},
	{"for the purpose of", "to"},
	{"with regard to", "about"},
	{"in spite of the fact that", "although"},
	{"until such time as", "until"},
	{"as a result of", "because"},
	{"prior to", "before"},
	{"subsequent to", "after"},
	{"a large number of", "many"},
	{"a great deal of", "much"},
	{"on a regular basis", "regularly"},
	{"make a decision", "decide"},
	{"give consideration to", "consider"},
	{"it is important to note that", ""},
	{"please be aware that", ""},
	{"it should be noted that", ""},
}

// Glossary maps lowercase technical terms to the parenthetical
// expansion a reviser inserts on first use.
var Glossary = []Replacement{
	{"api", "Application Programming Interface (API)"},
	{"sdk", "Software Development Kit (SDK)"},
	{"webhook", "webhook (an automated message sent between systems)"},
	{"endpoint", "endpoint (a connection point)"},
	{"payload", "payload (the data package)"},
	{"oauth", "OAuth (a secure login method)"},
	{"json", "JSON (a data format)"},
	{"crud", "CRUD (create, read, update, delete operations)"},
	{"uuid", "UUID (a unique identifier)"},
	{"regex", "regex (text pattern matching)"},
	{"ssl", "SSL (a secure connection standard)"},
	{"cdn", "CDN (content delivery network)"},
}

// TechnicalTerms is the wider set the readability analyzer counts,
// beyond the glossary entries that get expansions.
var TechnicalTerms = []string{
	"api", "sdk", "json", "webhook", "payload", "endpoint", "integration",
	"script", "database", "query", "parameter", "variable",
	"authentication", "token", "oauth", "rest", "http", "https",
	"ssl", "cdn", "uuid", "regex", "crud",
}

// AcronymAllowlist keeps these words capitalized when headings are
// rewritten to sentence case.
var AcronymAllowlist = []string{
	"API", "UI", "ID", "URL", "SDK", "HTTP", "HTTPS", "JSON", "YAML",
	"HTML", "CSS", "SQL", "REST", "OAuth", "SSL", "CDN", "UUID",
}

// SummaryHeadingKeywords identify a closing summary/next-steps section.
var SummaryHeadingKeywords = []string{"summary", "conclusion", "next steps", "next step", "wrap up", "recap"}

// PrerequisiteKeywords identify a prerequisites section or mention.
var PrerequisiteKeywords = []string{"prerequisite", "before you begin", "requirements", "what you need"}

// ExampleIndicators are literal mentions counted as example signals.
var ExampleIndicators = []string{"example", "for instance", "such as", "e.g.", "sample", "scenario"}

// UseCaseKeywords identify a use-case section or mention.
var UseCaseKeywords = []string{"use case", "when to use", "common uses", "example scenario"}

// Tables bundles the overridable rule tables.
type Tables struct {
	Contractions   []Replacement `yaml:"contractions"`
	VerbosePhrases []Replacement `yaml:"verbose_phrases"`
	Glossary       []Replacement `yaml:"glossary"`
}

// LoadTables overrides the built-in tables from a YAML file. Only
// non-empty sections replace their defaults. Called once at startup;
// the tables are immutable afterwards.
func LoadTables(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tables file: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return fmt.Errorf("parse tables file %s: %w", path, err)
	}

	if len(t.Contractions) > 0 {
		Contractions = t.Contractions
	}
	if len(t.VerbosePhrases) > 0 {
		VerbosePhrases = t.VerbosePhrases
	}
	if len(t.Glossary) > 0 {
		Glossary = t.Glossary
	}
	return nil
}
