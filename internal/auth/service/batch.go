package service

// duplicateEmails returns the emails that occur more than once in the batch,
// each reported once, in first-duplicate order. Pure; runs before any store
// access.
func duplicateEmails(inputs []SignUpInput) []string {
	seen := make(map[string]int, len(inputs))
	for _, in := range inputs {
		seen[in.Email]++
	}

	var dups []string
	reported := make(map[string]bool, len(seen))
	for _, in := range inputs {
		if seen[in.Email] > 1 && !reported[in.Email] {
			dups = append(dups, in.Email)
			reported[in.Email] = true
		}
	}
	return dups
}

// invalidCount reports how many batch entries are missing a required field.
func invalidCount(inputs []SignUpInput) int {
	count := 0
	for _, in := range inputs {
		if err := validate.Struct(in); err != nil {
			count++
		}
	}
	return count
}
