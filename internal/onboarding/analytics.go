package onboarding

import (
	"sort"
	"time"

	"github.com/frahmantamala/onboarding-management/internal"
)

// EmployeeProgress is one analytics row. Delayed is derived from task due
// dates at query time, never stored.
type EmployeeProgress struct {
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Department *string    `json:"department,omitempty"`
	Status     string     `json:"status"`
	Progress   int        `json:"progress"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	Delayed    bool       `json:"delayed"`
}

type DepartmentStats struct {
	Department  string `json:"department"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Delayed     int    `json:"delayed"`
	AvgProgress int    `json:"avg_progress"`
}

type AnalyticsOverview struct {
	TotalEmployees       int `json:"total_employees"`
	ActiveOnboardings    int `json:"active_onboardings"`
	CompletedOnboardings int `json:"completed_onboardings"`
	DelayedOnboardings   int `json:"delayed_onboardings"`
}

type AnalyticsReport struct {
	Overview    AnalyticsOverview  `json:"overview"`
	Departments []DepartmentStats  `json:"departments"`
	Employees   []EmployeeProgress `json:"employees"`
}

// Analytics aggregates every employee's onboarding state. Delayed employees
// sort first so the ones needing attention top the list.
func (s *Service) Analytics() (*AnalyticsReport, error) {
	rows, err := s.repo.GetEmployeeProgressRows(time.Now())
	if err != nil {
		s.logger.Error("failed to load analytics rows", "error", err)
		return nil, internal.NewInternalError("failed to load analytics", err)
	}

	report := &AnalyticsReport{
		Overview:  AnalyticsOverview{TotalEmployees: len(rows)},
		Employees: rows,
	}

	type deptAcc struct {
		total, completed, delayed, progressSum int
	}
	byDept := make(map[string]*deptAcc)

	for _, row := range rows {
		switch row.Status {
		case StatusCompleted:
			report.Overview.CompletedOnboardings++
		case StatusInProgress:
			report.Overview.ActiveOnboardings++
		}
		if row.Delayed {
			report.Overview.DelayedOnboardings++
		}

		dept := "UNASSIGNED"
		if row.Department != nil && *row.Department != "" {
			dept = *row.Department
		}
		acc, ok := byDept[dept]
		if !ok {
			acc = &deptAcc{}
			byDept[dept] = acc
		}
		acc.total++
		acc.progressSum += row.Progress
		if row.Status == StatusCompleted {
			acc.completed++
		}
		if row.Delayed {
			acc.delayed++
		}
	}

	for dept, acc := range byDept {
		report.Departments = append(report.Departments, DepartmentStats{
			Department:  dept,
			Total:       acc.total,
			Completed:   acc.completed,
			Delayed:     acc.delayed,
			AvgProgress: acc.progressSum / acc.total,
		})
	}
	sort.Slice(report.Departments, func(i, j int) bool {
		return report.Departments[i].Department < report.Departments[j].Department
	})

	sort.SliceStable(report.Employees, func(i, j int) bool {
		if report.Employees[i].Delayed != report.Employees[j].Delayed {
			return report.Employees[i].Delayed
		}
		return report.Employees[i].Progress < report.Employees[j].Progress
	})

	return report, nil
}
