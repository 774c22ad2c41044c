package suggest

// capitalPositions remembers which positions of prefix were upper case.
func capitalPositions(prefix string) []bool {
	positions := make([]bool, 0, len(prefix))
	upperSeen := false
	for _, r := range prefix {
		upper := r >= 'A' && r <= 'Z'
		upperSeen = upperSeen || upper
		positions = append(positions, upper)
	}
	if !upperSeen {
		return nil
	}
	return positions
}

// ApplyCapitalization upper-cases the letters of word at the positions the
// caller typed in upper case.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
