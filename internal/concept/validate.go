package concept

// ValidateCompleteness returns the concepts that have no spelling in lang,
// in declaration order. A complete language pack returns an empty slice.
func (r *Registry) ValidateCompleteness(lang string) ([]ID, error) {
	if !r.langSet[lang] {
		return nil, &UnsupportedLanguageError{Language: lang}
	}
	var missing []ID
	for _, id := range r.order {
		if _, ok := r.concepts[id][lang]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ValidateAmbiguity returns every spelling in lang that is bound to more
// than one concept, with the concepts it binds. Lookup resolves such
// spellings to the first binding; this reports them so pack authors can
// decide whether the collision is intended.
func (r *Registry) ValidateAmbiguity(lang string) (map[string][]ID, error) {
	if !r.langSet[lang] {
		return nil, &UnsupportedLanguageError{Language: lang}
	}
	ambiguous := make(map[string][]ID)
	for word, ids := range r.reverse[lang] {
		if len(ids) > 1 {
			bound := make([]ID, len(ids))
			copy(bound, ids)
			ambiguous[word] = bound
		}
	}
	return ambiguous, nil
}
