package file

import (
	"context"
	"fmt"

	"github.com/shiftmash/shiftmash/pkg/models"
	"github.com/shiftmash/shiftmash/pkg/persistence"
)

func (fp *Persistence) readShifts() ([]*models.Shift, error) {
	var shifts []*models.Shift
	if err := fp.readCollection("Shifts", shiftsFile, &shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ShiftsForDate returns all shifts on one day, across stores.
func (fp *Persistence) ShiftsForDate(_ context.Context, date string) ([]*models.Shift, error) {
	shifts, err := fp.readShifts()
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Shift, 0, len(shifts))

	for _, shift := range shifts {
		if shift.Date == date {
			matched = append(matched, shift)
		}
	}

	return matched, nil
}

// ShiftByID returns one shift by id.
func (fp *Persistence) ShiftByID(_ context.Context, id string) (*models.Shift, error) {
	shifts, err := fp.readShifts()
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if shift.ID == id {
			return shift, nil
		}
	}

	return nil, fmt.Errorf("shift %s: %w", id, persistence.ErrShiftNotFound)
}

// UpdateShift applies a patch to one shift and rewrites the collection.
func (fp *Persistence) UpdateShift(_ context.Context, id string, patch models.ShiftPatch) (*models.Shift, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	shifts, err := fp.readShifts()
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		if shift.ID != id {
			continue
		}

		patch.Apply(shift)

		if err := fp.writeCollection("UpdateShift", shiftsFile, shifts); err != nil {
			return nil, err
		}

		return shift, nil
	}

	return nil, fmt.Errorf("shift %s: %w", id, persistence.ErrShiftNotFound)
}

// SeedShifts replaces the shift collection.
func (fp *Persistence) SeedShifts(_ context.Context, shifts []*models.Shift) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.writeCollection("SeedShifts", shiftsFile, shifts)
}
