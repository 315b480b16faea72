package game

import "fmt"

func defaultFossils() []string {
	return []string{
		"Tyrannosaurus",
		"Triceratops",
		"Velociraptor",
		"Brachiosaurus",
		"Stegosaurus",
		"Spinosaurus",
		"Ankylosaurus",
		"Parasaurolophus",
		"Allosaurus",
		"Diplodocus",
		"Iguanodon",
		"Archaeopteryx",
		"Pteranodon",
		"Deinonychus",
		"Megalosaurus",
		"Pachycephalosaurus",
		"Corythosaurus",
		"Oviraptor",
		"Plateosaurus",
		"Styracosaurus",
		"Suchomimus",
		"Troodon",
		"Carnotaurus",
		"Sauropelta",
		"Albertosaurus",
		"Mamenchisaurus",
		"Edmontosaurus",
		"Herrerasaurus",
		"Giganotosaurus",
		"Therizinosaurus",
		"Kentrosaurus",
		"Dilophosaurus",
		"Coelophysis",
		"Protoceratops",
		"Sinraptor",
		"Rugops",
		"Lambeosaurus",
		"Mononykus",
		"Torosaurus",
		"Rhabdodon",
		"Ouranosaurus",
		"Microceratus",
		"Zuniceratops",
		"Einiosaurus",
		"Dromaeosaurus",
		"Massospondylus",
		"Lesothosaurus",
		"Noasaurus",
		"Gasparinisaura",
		"Minmi",
	}
}

// FarmdexView is the fossil collection as shown to the player.
type FarmdexView struct {
	Found        []string
	Total        int
	Undiscovered int
}

// discoverFossil picks one undiscovered fossil. The caller decides whether
// today is a fossil day.
func (s *State) discoverFossil() (string, bool) {
	p := s.player
	if len(p.FossilsFound) >= s.balance.FossilCap {
		return "", false
	}
	undiscovered := make([]string, 0, len(s.balance.Fossils))
	for _, f := range s.balance.Fossils {
		if !p.hasFossil(f) {
			undiscovered = append(undiscovered, f)
		}
	}
	if len(undiscovered) == 0 {
		return "", false
	}
	found := undiscovered[s.rng.IntN(len(undiscovered))]
	p.FossilsFound = append(p.FossilsFound, found)
	return fmt.Sprintf("NEW FOSSIL DISCOVERED: %s!", found), true
}

// Farmdex lists discovered fossils in discovery order.
func (s *State) Farmdex() FarmdexView {
	total := min(len(s.balance.Fossils), s.balance.FossilCap)
	found := append([]string(nil), s.player.FossilsFound...)
	return FarmdexView{
		Found:        found,
		Total:        total,
		Undiscovered: max(0, total-len(found)),
	}
}
