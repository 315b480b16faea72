package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scores for the ways a typed word can match a known name.
const (
	scoreExact  = 1.0
	scoreAlias  = 0.97
	scorePrefix = 0.9
	scoreFuzzy  = 0.72
	fuzzyStep   = 0.08
	tieMargin   = 0.05
)

// similarity scores typed against a known name. Prefix matches only count
// when allowPrefix is set. Inputs shorter than three letters never match
// fuzzily.
func similarity(typed, known string, allowPrefix bool) (float64, bool) {
	if typed == known {
		return scoreExact, true
	}
	if allowPrefix && len(typed) >= 2 && strings.HasPrefix(known, typed) {
		return scorePrefix, true
	}
	if len(typed) < 3 {
		return 0, false
	}
	d := levenshtein.ComputeDistance(typed, known)
	if d > typoBudget(len(known)) {
		return 0, false
	}
	return scoreFuzzy - fuzzyStep*float64(d), true
}

// typoBudget is how many edits a name of the given length tolerates.
func typoBudget(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

type phrase struct {
	verb   string
	text   string
	words  int
	spoken bool // an alias rather than the verb's own name
	exact  bool
}

type verbMatch struct {
	verb  string
	words int
	score float64
}

// Verbs is the set of commands the parser can map input onto.
type Verbs struct {
	defs    map[string]VerbDef
	phrases []phrase
}

func NewVerbs() *Verbs {
	return &Verbs{defs: make(map[string]VerbDef)}
}

func (v *Verbs) Add(def VerbDef) {
	def.Name = normaliseInput(def.Name)
	if def.Name == "" {
		return
	}
	v.defs[def.Name] = def
	v.addPhrase(def, def.Name, false)
	for _, alias := range def.Aliases {
		v.addPhrase(def, normaliseInput(alias), true)
	}
}

func (v *Verbs) addPhrase(def VerbDef, text string, spoken bool) {
	if text == "" {
		return
	}
	v.phrases = append(v.phrases, phrase{
		verb:   def.Name,
		text:   text,
		words:  len(strings.Fields(text)),
		spoken: spoken,
		exact:  def.Exact,
	})
}

func (v *Verbs) def(name string) (VerbDef, bool) {
	d, ok := v.defs[name]
	return d, ok
}

// match scores every phrase against the leading tokens. It returns the best
// match and the runner-up for a different verb, if any.
func (v *Verbs) match(tokens []string) (verbMatch, *verbMatch) {
	if len(tokens) == 0 {
		return verbMatch{}, nil
	}
	line := strings.Join(tokens, " ")
	var found []verbMatch
	for _, p := range v.phrases {
		n := min(len(tokens), p.words)
		head := strings.Join(tokens[:n], " ")

		if n == p.words && head == p.text {
			score := scoreExact
			if p.spoken {
				score = scoreAlias
			}
			found = append(found, verbMatch{verb: p.verb, words: n, score: score})
			continue
		}
		if p.exact {
			continue
		}
		score, ok := similarity(head, p.text, p.words == 1)
		if !ok {
			continue
		}
		if score < scorePrefix {
			if strings.Contains(line, p.text) {
				score += 0.04
			}
			if p.spoken {
				score += 0.03
			}
		}
		found = append(found, verbMatch{verb: p.verb, words: n, score: score})
	}
	if len(found) == 0 {
		return verbMatch{}, nil
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.words != b.words {
			return a.words > b.words
		}
		return a.verb < b.verb
	})
	best := found[0]
	for _, m := range found[1:] {
		if m.verb != best.verb {
			return best, &m
		}
	}
	return best, nil
}

// entityMatch resolves typed against a catalog. When two names score within
// tieMargin of each other both are returned and tie is set.
func entityMatch(typed string, pool []string) (names []string, score float64, tie bool) {
	typed = normaliseInput(typed)
	if typed == "" {
		return nil, 0, false
	}
	type candidate struct {
		name  string
		score float64
	}
	seen := make(map[string]bool, len(pool))
	var cands []candidate
	for _, raw := range pool {
		name := normaliseInput(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if s, ok := similarity(typed, name, true); ok {
			cands = append(cands, candidate{name: name, score: s})
		}
	}
	if len(cands) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].name < cands[j].name
	})
	best := cands[0]
	if len(cands) > 1 && best.score-cands[1].score < tieMargin && cands[1].score > 0.6 {
		return []string{best.name, cands[1].name}, best.score, true
	}
	return []string{best.name}, best.score, false
}

// FarmVerbs returns the commands of the game.
func FarmVerbs() *Verbs {
	v := NewVerbs()
	for _, def := range []VerbDef{
		{Name: "help", Aliases: []string{"h", "commands", "?"}, Kind: Help},
		{Name: "status", Aliases: []string{"stats", "me", "farm"}, Kind: Query},
		{Name: "plant", Aliases: []string{"sow", "seed", "grow"}, Kind: Command, Target: CropTarget, NeedsTarget: true},
		{Name: "harvest", Aliases: []string{"reap", "collect", "pick"}, Kind: Command},
		{Name: "next", Aliases: []string{"next day", "new day", "advance", "wait"}, Kind: Command},
		{Name: "sleep", Aliases: []string{"bed", "go to bed", "rest"}, Kind: Command},
		{Name: "nap", Aliases: []string{"snooze", "doze"}, Kind: Command},
		{Name: "fish", Aliases: []string{"go fishing", "cast"}, Kind: Command},
		{Name: "sell", Aliases: []string{"sell fish", "sell all"}, Kind: Command},
		{Name: "buy", Aliases: []string{"purchase", "get"}, Kind: Command, Target: ShopTarget, NeedsTarget: true},
		{Name: "shop", Aliases: []string{"merchant", "market", "store"}, Kind: Query},
		{Name: "farmdex", Aliases: []string{"fossils", "museum", "dex"}, Kind: Query},
		{Name: "save", Kind: Command},
		{Name: "new game", Aliases: []string{"restart", "reset"}, Kind: Command, Exact: true},
		{Name: "quit", Aliases: []string{"exit", "q"}, Kind: Command},
	} {
		v.Add(def)
	}
	return v
}
