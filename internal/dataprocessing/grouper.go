package dataprocessing

// SheetGroups partitions a workbook's sheet names by shared prefix. Order
// holds group keys by first appearance; Members holds each group's sheet
// names in workbook order. Every input sheet appears in exactly one group.
type SheetGroups struct {
	Order   []string
	Members map[string][]string
}

// TotalGroups returns the number of groups.
func (g SheetGroups) TotalGroups() int {
	return len(g.Order)
}

// GroupSheets partitions sheet names by their first prefixLength
// characters. A name shorter than the prefix forms a singleton group under
// its full name. prefixLength must be at least 1; callers validate.
func GroupSheets(sheetNames []string, prefixLength int) SheetGroups {
	groups := SheetGroups{Members: make(map[string][]string)}

	for _, name := range sheetNames {
		key := name
		if runes := []rune(name); len(runes) >= prefixLength {
			key = string(runes[:prefixLength])
		}

		if _, seen := groups.Members[key]; !seen {
			groups.Order = append(groups.Order, key)
		}
		groups.Members[key] = append(groups.Members[key], name)
	}

	return groups
}
