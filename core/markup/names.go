package markup

import "strings"

// Names holds the well-known topic ids and titles that markup may refer to
// through reserved names such as <TOPIC_HOME>.
type Names struct {
	HomeTopic      string `yaml:"home_topic"`
	HomeTitle      string `yaml:"home_title"`
	ReferenceTopic string `yaml:"reference_topic"`
	ReferenceTitle string `yaml:"reference_title"`
	IndexTopic     string `yaml:"index_topic"`
	IndexTitle     string `yaml:"index_title"`
}

// DefaultNames returns the reserved names used by the TMBASIC help.
func DefaultNames() Names {
	return Names{
		HomeTopic:      "doc",
		HomeTitle:      "TMBASIC Documentation",
		ReferenceTopic: "basicReference",
		ReferenceTitle: "BASIC Reference",
		IndexTopic:     "procedureIndex",
		IndexTitle:     "Procedure Index",
	}
}

// WithDefaults fills empty fields from DefaultNames.
func (n Names) WithDefaults() Names {
	d := DefaultNames()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&n.HomeTopic, d.HomeTopic)
	fill(&n.HomeTitle, d.HomeTitle)
	fill(&n.ReferenceTopic, d.ReferenceTopic)
	fill(&n.ReferenceTitle, d.ReferenceTitle)
	fill(&n.IndexTopic, d.IndexTopic)
	fill(&n.IndexTitle, d.IndexTitle)
	return n
}

func (n Names) lookup(name string) (string, bool) {
	switch name {
	case "TOPIC_HOME":
		return n.HomeTopic, true
	case "TITLE_HOME":
		return n.HomeTitle, true
	case "TOPIC_BASIC_REFERENCE":
		return n.ReferenceTopic, true
	case "TITLE_BASIC_REFERENCE":
		return n.ReferenceTitle, true
	case "TOPIC_PROCEDURE_INDEX":
		return n.IndexTopic, true
	case "TITLE_PROCEDURE_INDEX":
		return n.IndexTitle, true
	}
	return "", false
}

// Expand substitutes every reserved topic id or title inside s.
func (n Names) Expand(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return strings.NewReplacer(
		"<TOPIC_HOME>", n.HomeTopic,
		"<TITLE_HOME>", n.HomeTitle,
		"<TOPIC_BASIC_REFERENCE>", n.ReferenceTopic,
		"<TITLE_BASIC_REFERENCE>", n.ReferenceTitle,
		"<TOPIC_PROCEDURE_INDEX>", n.IndexTopic,
		"<TITLE_PROCEDURE_INDEX>", n.IndexTitle,
	).Replace(s)
}

// glyph is one special character in its three renderings.
type glyph struct {
	plain string // control byte drawn from the viewer's code page
	html  string
	text  string
}

var glyphs = map[string]glyph{
	"DIAMOND":        {plain: "\x04", html: "♦", text: "♦"},
	"BULLET":         {plain: "\x07", html: "•", text: "•"},
	"TRIANGLE_RIGHT": {plain: "\x10", html: "<wbr>►", text: "►"},
	"OPEN_CIRCLE":    {plain: "\x09", html: "○", text: "○"},
	"EM_DASH":        {plain: "-", html: "—", text: "—"},
}

func isReserved(name string) bool {
	if _, ok := glyphs[name]; ok {
		return true
	}
	_, ok := Names{}.lookup(name)
	return ok
}
