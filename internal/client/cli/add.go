package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/gymsync/internal/models"
)

// TemplateInput параметры нового шаблона.
// Exercises в формате "name:SETSxREPS[@KG]".
type TemplateInput struct {
	Name        string
	Description string
	Exercises   []string
}

// InstanceInput параметры проведенной тренировки
type InstanceInput struct {
	StartedAt       time.Time
	Name            string
	TemplateLocalID string
	Notes           string
	Completed       bool
}

// LogInput параметры записи упражнения
type LogInput struct {
	PerformedAt     time.Time
	InstanceLocalID string
	ExerciseName    string
	Notes           string
	WeightKg        float64
	DistanceMeters  float64
	SetNumber       int
	Reps            int
	DurationSeconds int
	AvgHeartRate    int
}

// AddTemplate создает шаблон тренировки
func (c *Cli) AddTemplate(ctx context.Context, in TemplateInput) error {
	c.io.Println("=== Add Workout Template ===")

	tpl := &models.WorkoutTemplate{
		Name:        in.Name,
		Description: in.Description,
	}
	for _, s := range in.Exercises {
		ex, err := parseExercise(s)
		if err != nil {
			return err
		}
		tpl.Exercises = append(tpl.Exercises, ex)
	}

	if err := c.data.Create(ctx, tpl); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	c.io.Printf("✓ Template %q saved (local id: %s)\n", tpl.Name, tpl.LocalID)
	c.printPending(ctx)
	return nil
}

// UpdateTemplate меняет название и описание шаблона; пустые значения не меняются
func (c *Cli) UpdateTemplate(ctx context.Context, localID, name, description string) error {
	entity, err := c.data.Get(ctx, models.EntityTypeTemplate, localID)
	if err != nil {
		return fmt.Errorf("template not found with ID %s: %w", localID, err)
	}
	tpl, ok := entity.(*models.WorkoutTemplate)
	if !ok {
		return fmt.Errorf("unexpected record type %T", entity)
	}

	if name != "" {
		tpl.Name = name
	}
	if description != "" {
		tpl.Description = description
	}
	if err := c.data.Update(ctx, tpl); err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	c.io.Printf("✓ Template %s updated\n", localID)
	c.printPending(ctx)
	return nil
}

// AddInstance записывает проведенную тренировку
func (c *Cli) AddInstance(ctx context.Context, in InstanceInput) error {
	c.io.Println("=== Add Workout ===")

	inst := &models.WorkoutInstance{
		Name:            in.Name,
		TemplateLocalID: in.TemplateLocalID,
		StartedAt:       in.StartedAt,
		Notes:           in.Notes,
	}
	if in.Completed {
		now := time.Now().UTC()
		inst.CompletedAt = &now
	}

	if err := c.data.Create(ctx, inst); err != nil {
		return fmt.Errorf("failed to save workout: %w", err)
	}

	c.io.Printf("✓ Workout %q saved (local id: %s)\n", inst.Name, inst.LocalID)
	c.printPending(ctx)
	return nil
}

// CompleteInstance отмечает тренировку завершенной
func (c *Cli) CompleteInstance(ctx context.Context, localID string) error {
	entity, err := c.data.Get(ctx, models.EntityTypeInstance, localID)
	if err != nil {
		return fmt.Errorf("workout not found with ID %s: %w", localID, err)
	}
	inst, ok := entity.(*models.WorkoutInstance)
	if !ok {
		return fmt.Errorf("unexpected record type %T", entity)
	}
	if inst.CompletedAt != nil {
		c.io.Printf("Workout %s is already completed\n", localID)
		return nil
	}

	now := time.Now().UTC()
	inst.CompletedAt = &now
	if err := c.data.Update(ctx, inst); err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}

	c.io.Printf("✓ Workout %s completed\n", localID)
	c.printPending(ctx)
	return nil
}

// AddLog записывает выполнение упражнения
func (c *Cli) AddLog(ctx context.Context, in LogInput) error {
	c.io.Println("=== Add Exercise Log ===")

	l := &models.ExerciseLog{
		InstanceLocalID: in.InstanceLocalID,
		ExerciseName:    in.ExerciseName,
		Source:          models.LogSourceManual,
		Notes:           in.Notes,
		WeightKg:        in.WeightKg,
		DistanceMeters:  in.DistanceMeters,
		SetNumber:       in.SetNumber,
		Reps:            in.Reps,
		DurationSeconds: in.DurationSeconds,
		AvgHeartRate:    in.AvgHeartRate,
		PerformedAt:     in.PerformedAt,
	}

	if err := c.data.Create(ctx, l); err != nil {
		return fmt.Errorf("failed to save exercise log: %w", err)
	}

	c.io.Printf("✓ %s logged (local id: %s)\n", l.ExerciseName, l.LocalID)
	c.printPending(ctx)
	return nil
}
