package warehouse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999 MST",
	"2006-01-02 15:04:05.999999",
	creationDateLayout,
	"2006-01-02",
}

// ReadQuestionsCSV parses an export of the questions table with the header
// id,creation_date,tags, where tags are separated by '|'.
func ReadQuestionsCSV(r io.Reader) ([]Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if strings.TrimSpace(header[0]) != "id" || strings.TrimSpace(header[1]) != "creation_date" || strings.TrimSpace(header[2]) != "tags" {
		return nil, fmt.Errorf("unexpected csv header %v, want [id creation_date tags]", header)
	}

	var questions []Question
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return questions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q", line, record[0])
		}
		created, err := parseCreationDate(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var tags []string
		for _, tag := range strings.Split(record[2], "|") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}

		questions = append(questions, Question{ID: id, CreationDate: created, Tags: tags})
	}
}

func parseCreationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid creation_date %q", s)
}
