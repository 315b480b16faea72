package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/terminal-farmer/internal/game"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	var (
		balancePath string
		root        string
	)
	flag.StringVar(&balancePath, "balance", "", "YAML balance file to document instead of the defaults")
	flag.StringVar(&root, "out", filepath.Join("docs", "reference", "catalogs"), "output directory")
	flag.Parse()

	b, err := game.LoadBalance(balancePath)
	if err != nil {
		fatal(err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		fatal(err)
	}

	files := generateDocs(b)
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateDocs(b game.Balance) []docFile {
	return []docFile{
		generateCropsDoc(b),
		generateFishDoc(b),
		generateShopDoc(b),
		generateEventsDoc(),
		generateCalendarDoc(b),
		generateFossilsDoc(b),
	}
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Data Catalogs\n\n")
	b.WriteString("Generated from the game balance using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateCropsDoc(bal game.Balance) docFile {
	unlockDay := make(map[string]int, len(bal.DayUnlocks))
	for _, u := range bal.DayUnlocks {
		unlockDay[u.Crop] = u.Day
	}
	seedPrice := make(map[string]int, len(bal.Seeds))
	for _, s := range bal.Seeds {
		seedPrice[s.Crop] = s.Price
	}
	starting := make(map[string]bool, len(bal.StartingCrops))
	for _, name := range bal.StartingCrops {
		starting[name] = true
	}

	var b strings.Builder
	b.WriteString("# Crops\n\n")
	b.WriteString(fmt.Sprintf("Total crops: **%d**.\n\n", len(bal.Crops)))
	b.WriteString("| Name | Cost | Grow Time (s) | Value | Stamina | Color | Unlocked By |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, c := range bal.Crops {
		source := ""
		switch {
		case starting[c.Name]:
			source = "start"
		case unlockDay[c.Name] > 0:
			source = fmt.Sprintf("day %d", unlockDay[c.Name])
		case seedPrice[c.Name] > 0:
			source = fmt.Sprintf("seed $%d", seedPrice[c.Name])
		case c.Name == bal.SpiritCrop:
			source = "spirit farmer event"
		}
		b.WriteString("| ")
		b.WriteString(escape(c.Name))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(c.Cost))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(c.GrowthTime))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(c.Value))
		b.WriteString(" | ")
		b.WriteString(formatFloat(c.StaminaCost))
		b.WriteString(" | ")
		b.WriteString(escape(c.Color))
		b.WriteString(" | ")
		b.WriteString(escape(source))
		b.WriteString(" |\n")
	}
	return docFile{Name: "crops.md", Title: "Crops", Content: b.String()}
}

func generateFishDoc(bal game.Balance) docFile {
	items := append([]game.Fish(nil), bal.Fish...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value < items[j].Value })

	var b strings.Builder
	b.WriteString("# Fish\n\n")
	b.WriteString(fmt.Sprintf("Each cast costs %s stamina and lands one fish uniformly at random. ", formatFloat(bal.FishingStamina)))
	b.WriteString(fmt.Sprintf("On a perfect fishing day sale values are multiplied by %s.\n\n", formatFloat(bal.FishingBonusMultiplier)))
	b.WriteString("| Name | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, f := range items {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", escape(f.Name), f.Value))
	}
	return docFile{Name: "fish.md", Title: "Fish", Content: b.String()}
}

func generateShopDoc(bal game.Balance) docFile {
	var b strings.Builder
	b.WriteString("# Merchant\n\n")
	b.WriteString(fmt.Sprintf("The merchant trades in the morning only. Prices are multiplied by %d on inflated market days.\n\n", bal.InflationMultiplier))

	b.WriteString("## Seeds\n\n")
	b.WriteString("| Key | Unlocks | Price |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, s := range bal.Seeds {
		b.WriteString(fmt.Sprintf("| %s | %s | %d |\n", escape(s.Key), escape(s.Crop), s.Price))
	}

	b.WriteString("\n## Items\n\n")
	b.WriteString("| Key | Effect | Price |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, it := range bal.Items {
		b.WriteString(fmt.Sprintf("| %s | %s | %d |\n", escape(it.Key), escape(string(it.Effect)), it.Price))
	}

	b.WriteString("\n## Expansions\n\n")
	b.WriteString("| Key | Plots | Price |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, e := range bal.Expansions {
		b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", escape(e.Key), e.Plots, e.Price))
	}
	return docFile{Name: "merchant.md", Title: "Merchant", Content: b.String()}
}

func generateEventsDoc() docFile {
	keys := game.EventKeys()
	var b strings.Builder
	b.WriteString("# World Events\n\n")
	b.WriteString(fmt.Sprintf("Total events: **%d**. At most one fires per day, picked uniformly.\n\n", len(keys)))
	for _, k := range keys {
		b.WriteString("- `")
		b.WriteString(string(k))
		b.WriteString("`\n")
	}
	return docFile{Name: "events.md", Title: "World Events", Content: b.String()}
}

func generateCalendarDoc(bal game.Balance) docFile {
	seasons := []game.Season{game.SeasonSpring, game.SeasonSummer, game.SeasonAutumn, game.SeasonWinter}

	var b strings.Builder
	b.WriteString("# Calendar\n\n")
	b.WriteString("Seasons last 30 days. Day-part lengths are minutes of real time.\n\n")
	b.WriteString("| Season | Morning | Afternoon | Evening | Night |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, s := range seasons {
		d := bal.DayParts.ForSeason(s)
		b.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n", s, d.Morning, d.Afternoon, d.Evening, d.Night))
	}

	if len(bal.DayUnlocks) > 0 {
		b.WriteString("\n## Scheduled Unlocks\n\n")
		for _, u := range bal.DayUnlocks {
			b.WriteString(fmt.Sprintf("- Day %d: %s\n", u.Day, escape(u.Crop)))
		}
	}
	return docFile{Name: "calendar.md", Title: "Calendar", Content: b.String()}
}

func generateFossilsDoc(bal game.Balance) docFile {
	var b strings.Builder
	b.WriteString("# Fossils\n\n")
	b.WriteString(fmt.Sprintf("With a Farmdex scanner, every even day has a %s%% chance of a find, up to %d fossils.\n\n",
		formatFloat(bal.FossilChance*100), bal.FossilCap))
	b.WriteString(escape(strings.Join(bal.Fossils, ", ")))
	b.WriteString("\n")
	return docFile{Name: "fossils.md", Title: "Fossils", Content: b.String()}
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
