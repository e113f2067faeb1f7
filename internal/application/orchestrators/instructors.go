package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	instructorDomain "clubhouse/internal/domain/instructor"
	"clubhouse/internal/validation"
)

// InstructorStore is the roster persistence surface.
type InstructorStore interface {
	Add(ctx context.Context, i instructorDomain.Instructor) error
	Delete(ctx context.Context, dni string) error
	List(ctx context.Context) ([]instructorDomain.Instructor, error)
}

// InstructorDeps holds dependencies for the roster use cases.
type InstructorDeps struct {
	Instructors InstructorStore
}

// ExecuteAddInstructor puts a teacher on the roster. The sport name is free
// text: a roster entry may precede the catalog offering it will teach.
// PRE: i carries the full roster record
// POST: Instructor persisted, or ValidationError / DuplicateDNI
func ExecuteAddInstructor(ctx context.Context, i instructorDomain.Instructor, deps InstructorDeps) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !validation.IsValidDNI(i.DNI) {
		return fmt.Errorf("%w: DNI must be 7 or 8 digits", ErrValidation)
	}
	if err := deps.Instructors.Add(ctx, i); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "instructor_added", "dni", i.DNI, "sport", i.Sport)
	return nil
}

// ExecuteRemoveInstructor takes a teacher off the roster.
func ExecuteRemoveInstructor(ctx context.Context, dni string, deps InstructorDeps) error {
	if err := deps.Instructors.Delete(ctx, dni); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "instructor_removed", "dni", dni)
	return nil
}

// ExecuteListInstructors returns the roster ordered by last name.
func ExecuteListInstructors(ctx context.Context, deps InstructorDeps) ([]instructorDomain.Instructor, error) {
	return deps.Instructors.List(ctx)
}
