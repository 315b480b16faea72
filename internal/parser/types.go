package parser

// Kind groups verbs by what they do to the game.
type Kind int

const (
	Command Kind = iota
	Query
	Help
	Unknown
)

// Target names the catalog a verb's first argument is resolved against.
type Target int

const (
	NoTarget Target = iota
	CropTarget
	ShopTarget
)

// Intent is one parsed input line.
type Intent struct {
	Raw        string
	Normalised string
	Kind       Kind
	Verb       string
	Args       []string
	// Plot is the 1-based plot number typed by the player, nil when absent.
	Plot       *int
	Confidence float64
	Clarify    *ClarifyQuestion
}

// ClarifyQuestion asks the player to pick between candidate intents.
// Options is empty when the prompt is only a hint.
type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries the names the player can currently refer to.
type ParseContext struct {
	Crops      []string
	Shop       []string
	LastEntity string
}

func (c ParseContext) pool(t Target) []string {
	switch t {
	case CropTarget:
		return c.Crops
	case ShopTarget:
		return c.Shop
	default:
		return nil
	}
}

// VerbDef describes one command the parser understands.
type VerbDef struct {
	Name    string
	Aliases []string
	Kind    Kind
	Target  Target
	// NeedsTarget makes the parser ask for an argument when none was given.
	NeedsTarget bool
	// Exact verbs match only when typed in full, never by prefix or typo.
	Exact bool
}
