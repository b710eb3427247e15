package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const caseDateLayout = "2006-01-02"

// LoadGoldenCases reads and parses a labeled case set from a JSON file.
func LoadGoldenCases(path string) ([]GoldenCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden cases file: %w", err)
	}

	var cases []GoldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse golden cases: %w", err)
	}

	return cases, nil
}

// ValidateGoldenCases checks that all golden cases have required fields and valid values.
func ValidateGoldenCases(cases []GoldenCase) error {
	seen := make(map[string]struct{}, len(cases))

	for i, c := range cases {
		if c.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.Age < 0 {
			return fmt.Errorf("case %q: negative age", c.ID)
		}
		if c.Gender != "M" && c.Gender != "F" {
			return fmt.Errorf("case %q: invalid gender %q", c.ID, c.Gender)
		}
		if _, err := time.Parse(caseDateLayout, c.SchedulingDate); err != nil {
			return fmt.Errorf("case %q: invalid scheduling_date %q (use YYYY-MM-DD)", c.ID, c.SchedulingDate)
		}
		if _, err := time.Parse(caseDateLayout, c.AppointmentDate); err != nil {
			return fmt.Errorf("case %q: invalid appointment_date %q (use YYYY-MM-DD)", c.ID, c.AppointmentDate)
		}
	}

	return nil
}
