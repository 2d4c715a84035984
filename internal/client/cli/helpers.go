package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/gymsync/internal/models"
)

// parseExercise разбирает упражнение шаблона в формате "name:SETSxREPS[@KG]",
// например "Bench press:3x10@60"
func parseExercise(s string) (models.TemplateExercise, error) {
	name, scheme, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return models.TemplateExercise{}, fmt.Errorf("invalid exercise %q, expected name:SETSxREPS[@KG]", s)
	}

	scheme, weight, hasWeight := strings.Cut(strings.TrimSpace(scheme), "@")
	setsStr, repsStr, ok := strings.Cut(strings.ToLower(scheme), "x")
	if !ok {
		return models.TemplateExercise{}, fmt.Errorf("invalid exercise %q, expected name:SETSxREPS[@KG]", s)
	}

	sets, err := strconv.Atoi(strings.TrimSpace(setsStr))
	if err != nil || sets <= 0 {
		return models.TemplateExercise{}, fmt.Errorf("invalid sets in %q", s)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
	if err != nil || reps <= 0 {
		return models.TemplateExercise{}, fmt.Errorf("invalid reps in %q", s)
	}

	ex := models.TemplateExercise{Name: name, Sets: sets, Reps: reps}
	if hasWeight {
		kg, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil || kg < 0 {
			return models.TemplateExercise{}, fmt.Errorf("invalid weight in %q", s)
		}
		ex.WeightKg = kg
	}
	return ex, nil
}

// displayServerID показывает "-" пока сервер не назначил ID
func displayServerID(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

func displayTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// displayAny принимает time.Time или *time.Time (для шаблонов)
func displayAny(v any) string {
	switch t := v.(type) {
	case time.Time:
		return displayTime(t)
	case *time.Time:
		if t == nil {
			return "-"
		}
		return displayTime(*t)
	}
	return fmt.Sprint(v)
}
