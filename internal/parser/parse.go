package parser

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// verbFloor is the lowest verb score accepted without guessing.
	verbFloor = 0.5
	// unsure is the confidence below which the player is asked to rephrase.
	unsure       = 0.52
	maxOptions   = 5
	couldNotMap  = "I couldn't map that to a command. Try help, status, plant, harvest, next, sleep, nap, fish, sell, buy, shop, farmdex."
	emptyCommand = "Type a command, or help for the list."
)

type Parser struct {
	verbs *Verbs
}

func New() *Parser {
	return &Parser{verbs: FarmVerbs()}
}

// Parse maps one input line onto an intent. Typos in verbs and catalog names
// are corrected where the match is clear; otherwise Clarify is set.
func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	in := Intent{Raw: raw, Normalised: normaliseInput(raw), Kind: Unknown}
	if in.Normalised == "" {
		in.Clarify = &ClarifyQuestion{Prompt: emptyCommand}
		return in
	}

	tokens := strings.Fields(in.Normalised)
	best, runnerUp := p.verbs.match(tokens)
	if best.verb == "" || best.score < verbFloor {
		if guess, ok := p.guess(ctx, in); ok {
			return guess
		}
		in.Clarify = &ClarifyQuestion{Prompt: couldNotMap}
		return in
	}
	if runnerUp != nil && best.score-runnerUp.score < tieMargin && runnerUp.score > 0.65 {
		in.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: []Intent{p.bare(raw, best), p.bare(raw, *runnerUp)},
		}
		return in
	}

	def, _ := p.verbs.def(best.verb)
	in.Verb = def.Name
	in.Kind = def.Kind

	rest, plot := takePlot(tokens[best.words:])
	in.Plot = plot
	args, argScore, clarify := resolveArgs(ctx, def, rest)
	if clarify != nil {
		for i := range clarify.Options {
			clarify.Options[i].Plot = plot
		}
		in.Clarify = clarify
		in.Confidence = 0.45
		return in
	}
	in.Args = args
	in.Confidence = clamp(best.score*0.75 + argScore*0.25)

	if def.NeedsTarget && len(in.Args) == 0 {
		in.Clarify = askTarget(ctx, def)
		in.Confidence = 0.46
		return in
	}
	if in.Confidence < unsure {
		in.Clarify = &ClarifyQuestion{Prompt: "I'm not sure what you meant. Please rephrase."}
	}
	return in
}

func (p *Parser) bare(raw string, m verbMatch) Intent {
	def, _ := p.verbs.def(m.verb)
	return Intent{Raw: raw, Normalised: def.Name, Kind: def.Kind, Verb: def.Name, Confidence: m.score}
}

func targeted(def VerbDef, name string, score float64) Intent {
	return Intent{Kind: def.Kind, Verb: def.Name, Args: []string{name}, Confidence: score}
}

// resolveArgs turns the words after the verb into arguments. For verbs with
// a target only the first argument is kept, resolved against its catalog.
func resolveArgs(ctx ParseContext, def VerbDef, tokens []string) ([]string, float64, *ClarifyQuestion) {
	score := 0.9
	var args []string
	pool := ctx.pool(def.Target)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if fillers[tok] {
			continue
		}
		if pronouns[tok] {
			if strings.TrimSpace(ctx.LastEntity) == "" {
				return nil, 0.4, &ClarifyQuestion{Prompt: fmt.Sprintf("What does %q refer to?", tok)}
			}
			args = append(args, normaliseInput(ctx.LastEntity))
			score -= 0.08
			continue
		}
		if def.Target == NoTarget || len(args) > 0 {
			args = append(args, tok)
			score -= 0.02
			continue
		}

		typed := tok
		// Shop keys like "eggplant seed" span two words.
		if i+1 < len(tokens) {
			pair := tok + " " + tokens[i+1]
			if _, s, _ := entityMatch(pair, pool); s > scorePrefix {
				typed = pair
				i++
			}
		}
		names, s, tie := entityMatch(typed, pool)
		switch {
		case tie:
			return nil, 0.52, &ClarifyQuestion{
				Prompt:  fmt.Sprintf("Did you mean %s:", def.Name),
				Options: []Intent{targeted(def, names[0], s), targeted(def, names[1], s-0.01)},
			}
		case len(names) == 1:
			args = append(args, names[0])
			score = min(score, s)
		default:
			// Unknown names go through so the game can say why.
			args = append(args, typed)
			score -= 0.02
		}
	}
	if def.Target != NoTarget && len(args) > 1 {
		args = args[:1]
		score -= 0.05
	}
	return args, clamp(score), nil
}

func askTarget(ctx ParseContext, def VerbDef) *ClarifyQuestion {
	seen := map[string]bool{}
	var options []Intent
	for _, raw := range ctx.pool(def.Target) {
		name := normaliseInput(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		options = append(options, targeted(def, name, 0.88))
		if len(options) == maxOptions {
			break
		}
	}
	if len(options) == 0 {
		return &ClarifyQuestion{Prompt: fmt.Sprintf("Nothing to %s right now.", def.Name)}
	}
	return &ClarifyQuestion{Prompt: fmt.Sprintf("What should I %s?", def.Name), Options: options}
}

// sentenceHints map whole phrases in free text onto verbs. Earlier rows win.
var sentenceHints = []struct {
	verb    string
	kind    Kind
	score   float64
	phrases []string
}{
	{"status", Query, 0.9, []string{"how am i doing", "how is my farm", "check farm", "my money", "how much money"}},
	{"shop", Query, 0.88, []string{"what can i buy", "what is for sale", "whats for sale", "visit merchant", "see merchant"}},
	{"nap", Command, 0.88, []string{"take a nap", "quick nap", "power nap"}},
	{"sleep", Command, 0.86, []string{"go to sleep", "go to bed", "call it a day", "end the day"}},
	{"next", Command, 0.84, []string{"start a new day", "skip the day", "skip day"}},
	{"sell", Command, 0.86, []string{"sell my fish", "sell the fish", "sell fish"}},
	{"fish", Command, 0.8, []string{"fish", "fishing"}},
	{"harvest", Command, 0.82, []string{"harvest", "pick crops", "collect crops", "gather crops"}},
	{"sleep", Command, 0.8, []string{"sleep"}},
}

// guess reads free text such as "i want to plant some whaet" when the line
// does not start with a verb.
func (p *Parser) guess(ctx ParseContext, in Intent) (Intent, bool) {
	for _, hint := range sentenceHints {
		for _, ph := range hint.phrases {
			if hasWord(in.Normalised, ph) {
				in.Kind, in.Verb, in.Confidence = hint.kind, hint.verb, hint.score
				return in, true
			}
		}
	}

	tokens := strings.Fields(in.Normalised)
	for i, tok := range tokens {
		if tok != "plant" {
			continue
		}
		rest, plot := takePlot(tokens[i+1:])
		for _, cand := range rest {
			if fillers[cand] {
				continue
			}
			names, score, tie := entityMatch(cand, ctx.Crops)
			in.Kind, in.Verb, in.Plot = Command, "plant", plot
			if tie {
				a := Intent{Kind: Command, Verb: "plant", Args: []string{names[0]}, Plot: plot, Confidence: score}
				b := Intent{Kind: Command, Verb: "plant", Args: []string{names[1]}, Plot: plot, Confidence: score - 0.01}
				in.Confidence = 0.52
				in.Clarify = &ClarifyQuestion{Prompt: "Did you mean:", Options: []Intent{a, b}}
				return in, true
			}
			if len(names) == 1 {
				in.Args = []string{names[0]}
				in.Confidence = clamp(score)
				return in, true
			}
		}
	}
	return in, false
}

func clamp(v float64) float64 {
	return max(0, min(1, v))
}

// IntentToCommandString renders an intent as the canonical command line the
// game executes, for example "plant wheat 3".
func IntentToCommandString(in Intent) string {
	verb := normaliseInput(in.Verb)
	if verb == "" {
		return ""
	}
	parts := []string{verb}
	for _, arg := range in.Args {
		if n := normaliseInput(arg); n != "" {
			parts = append(parts, n)
		}
	}
	if in.Plot != nil {
		parts = append(parts, strconv.Itoa(*in.Plot))
	}
	return strings.Join(parts, " ")
}
