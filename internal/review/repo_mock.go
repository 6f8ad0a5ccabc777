package review

import (
	"context"

	"github.com/2beens/straviz/internal/activity"
)

type ActivitiesRepoMock struct {
	activities map[int][]activity.Activity
	listErr    error
}

func NewMockActivitiesRepo() *ActivitiesRepoMock {
	return &ActivitiesRepoMock{
		activities: make(map[int][]activity.Activity),
	}
}

func (r *ActivitiesRepoMock) SetActivities(year int, activities []activity.Activity) {
	r.activities[year] = activities
}

func (r *ActivitiesRepoMock) SetListError(err error) {
	r.listErr = err
}

func (r *ActivitiesRepoMock) ListForYear(_ context.Context, year int) ([]activity.Activity, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.activities[year], nil
}
