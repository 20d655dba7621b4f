package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/totegamma/foodgram/internal/domain"
)

// readCSV returns the records of r with surrounding spaces trimmed. A
// first row equal to header is skipped, so files with and without a
// header row both load.
func readCSV(r io.Reader, header []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) > 0 && isHeader(records[0], header) {
		records = records[1:]
	}
	for _, record := range records {
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
	}
	return records, nil
}

func isHeader(record, header []string) bool {
	for i := range header {
		if !strings.EqualFold(strings.TrimSpace(record[i]), header[i]) {
			return false
		}
	}
	return true
}

func parseIngredientsCSV(r io.Reader) ([]domain.Ingredient, error) {
	records, err := readCSV(r, []string{"name", "measurement_unit"})
	if err != nil {
		return nil, err
	}

	ingredients := make([]domain.Ingredient, 0, len(records))
	for i, record := range records {
		if record[0] == "" || record[1] == "" {
			return nil, errors.Errorf("ingredient row %d: name and measurement_unit are required", i+1)
		}
		ingredients = append(ingredients, domain.Ingredient{Name: record[0], MeasurementUnit: record[1]})
	}
	return ingredients, nil
}

func parseIngredientsJSON(r io.Reader) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	if err := json.NewDecoder(r).Decode(&ingredients); err != nil {
		return nil, errors.Wrap(err, "decode ingredients")
	}
	for i, ingredient := range ingredients {
		if ingredient.Name == "" || ingredient.MeasurementUnit == "" {
			return nil, errors.Errorf("ingredient %d: name and measurement_unit are required", i+1)
		}
		ingredients[i].ID = 0
	}
	return ingredients, nil
}

var (
	tagColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	tagSlugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// parseTagsCSV rejects the whole file on the first bad row. Name, color
// and slug are unique in the tags table, so a duplicate inside the file
// is an error too instead of a silently skipped insert.
func parseTagsCSV(r io.Reader) ([]domain.Tag, error) {
	records, err := readCSV(r, []string{"name", "color", "slug"})
	if err != nil {
		return nil, err
	}

	seen := map[string]int{}
	tags := make([]domain.Tag, 0, len(records))
	for i, record := range records {
		tag := domain.Tag{Name: record[0], Color: record[1], Slug: record[2]}
		if err := validateTag(tag); err != nil {
			return nil, errors.Wrapf(err, "tag row %d", i+1)
		}
		for _, key := range []string{"name:" + tag.Name, "color:" + strings.ToUpper(tag.Color), "slug:" + tag.Slug} {
			if prev, ok := seen[key]; ok {
				return nil, errors.Errorf("tag row %d: %s duplicates row %d", i+1, key, prev)
			}
			seen[key] = i + 1
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func validateTag(tag domain.Tag) error {
	switch {
	case tag.Name == "" || tag.Slug == "":
		return errors.New("name and slug are required")
	case utf8.RuneCountInString(tag.Name) > domain.MaxNameLength:
		return errors.Errorf("name is longer than %d characters", domain.MaxNameLength)
	case utf8.RuneCountInString(tag.Slug) > domain.MaxNameLength:
		return errors.Errorf("slug is longer than %d characters", domain.MaxNameLength)
	case !tagSlugPattern.MatchString(tag.Slug):
		return errors.Errorf("slug %q may contain only letters, digits, '-' and '_'", tag.Slug)
	case !tagColorPattern.MatchString(tag.Color):
		return errors.Errorf("color %q is not a #RRGGBB hex value", tag.Color)
	}
	return nil
}
