package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/solaris/internal/db"
	"github.com/terraincognita07/solaris/internal/services"
	"gorm.io/gorm"
)

type RederiveSettings struct {
	Segment     services.SegmentOptions
	Location    *time.Location
	Derivations services.DerivationRecorder
}

// RunRederiveCommand rebuilds derived cycles from stored period days. An empty
// userArg processes every user.
func RunRederiveCommand(database *gorm.DB, settings RederiveSettings, userArg string, out io.Writer) error {
	if database == nil {
		return errors.New("database is required")
	}
	repositories := db.NewRepositories(database)

	userIDs, err := rederiveTargets(repositories.Users, userArg)
	if err != nil {
		return err
	}

	deriver := services.NewCycleDeriver(repositories.PeriodDays, repositories.Cycles, settings.Segment, settings.Location).
		WithRecorder(settings.Derivations)

	failed := 0
	for _, userID := range userIDs {
		result, err := deriver.Rederive(userID)
		if err != nil {
			failed++
			fmt.Fprintf(out, "user %d: %v\n", userID, err)
			continue
		}
		fmt.Fprintf(out, "user %d: %d created, %d updated, %d deleted\n",
			userID, result.Inserted, result.Updated, result.Deleted)
	}

	if failed > 0 {
		return fmt.Errorf("rederive failed for %d of %d users", failed, len(userIDs))
	}
	fmt.Fprintf(out, "Rederived cycles for %d users\n", len(userIDs))
	return nil
}

func rederiveTargets(users *db.UserRepository, userArg string) ([]uint, error) {
	userArg = strings.TrimSpace(userArg)
	if userArg == "" {
		ids, err := users.ListIDs()
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return ids, nil
	}

	parsed, err := strconv.ParseUint(userArg, 10, 64)
	if err != nil || parsed == 0 {
		return nil, fmt.Errorf("invalid user id %q", userArg)
	}
	if _, err := users.FindByID(uint(parsed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d not found", parsed)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return []uint{uint(parsed)}, nil
}
