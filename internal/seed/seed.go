package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/alimon808/ContosoUniversity2017/internal/app/models"
	appRepos "github.com/alimon808/ContosoUniversity2017/internal/app/repositories"
)

var startDate = time.Date(2007, time.September, 1, 0, 0, 0, 0, time.UTC)

// DefaultDepartments are created on first start
var DefaultDepartments = []appModels.Department{
	{Name: "English", Budget: 350000, StartDate: startDate},
	{Name: "Mathematics", Budget: 100000, StartDate: startDate},
	{Name: "Engineering", Budget: 350000, StartDate: startDate},
	{Name: "Economics", Budget: 100000, StartDate: startDate},
}

type defaultCourse struct {
	number     string
	title      string
	credits    int
	department string
}

var defaultCourses = []defaultCourse{
	{"1050", "Chemistry", 3, "Engineering"},
	{"4022", "Microeconomics", 3, "Economics"},
	{"4041", "Macroeconomics", 3, "Economics"},
	{"1045", "Calculus", 4, "Mathematics"},
	{"3141", "Trigonometry", 4, "Mathematics"},
	{"2021", "Composition", 3, "English"},
	{"2042", "Literature", 4, "English"},
}

// CreateDefaultData creates the default departments that are missing and, when no
// course exists yet, the default courses. Running it again changes nothing.
func CreateDefaultData(
	ctx context.Context,
	departmentRepo appRepos.DepartmentFinder,
	courseRepo appRepos.Repository[appModels.Course],
	lgr zerolog.Logger,
) error {
	lgr.Info().Msg("Checking/Creating default data (Departments/Courses)...")

	departmentIDs := make(map[string]int64, len(DefaultDepartments))
	created := 0
	for _, d := range DefaultDepartments {
		existing, err := departmentRepo.GetByName(ctx, d.Name)
		switch {
		case err == nil:
			departmentIDs[d.Name] = existing.ID
			continue
		case !errors.Is(err, appRepos.ErrNotFound):
			return fmt.Errorf("error looking up department %q: %w", d.Name, err)
		}

		department := d
		if err := departmentRepo.Add(ctx, &department); err != nil {
			return fmt.Errorf("error creating department %q: %w", d.Name, err)
		}
		departmentIDs[d.Name] = department.ID
		created++
	}
	lgr.Info().Int("created", created).Msg("Default departments checked")

	courses, err := courseRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error checking existing courses: %w", err)
	}
	if len(courses) > 0 {
		lgr.Info().Int("existing", len(courses)).Msg("Courses already present, skipping default courses")
		return nil
	}

	for _, c := range defaultCourses {
		course := &appModels.Course{
			CourseNumber: c.number,
			Title:        c.title,
			Credits:      c.credits,
			DepartmentID: departmentIDs[c.department],
		}
		if err := courseRepo.Add(ctx, course); err != nil {
			return fmt.Errorf("error creating course %s: %w", c.number, err)
		}
	}
	lgr.Info().Int("created", len(defaultCourses)).Msg("Default courses created")

	return nil
}
