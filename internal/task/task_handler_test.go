package task_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-ems/internal/domain"
	"go-ems/internal/task"
	taskerrors "go-ems/internal/task/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn       func(ctx context.Context, actor task.Actor, req task.CreateTaskRequest) (task.TaskResponse, error)
	getAllFn       func(ctx context.Context, actor task.Actor) ([]task.TaskResponse, error)
	getByIDFn      func(ctx context.Context, actor task.Actor, id string) (task.TaskResponse, error)
	updateStatusFn func(ctx context.Context, actor task.Actor, id string, req task.UpdateTaskStatusRequest) (task.TaskResponse, error)
	startTimerFn   func(ctx context.Context, actor task.Actor, id string) (task.TaskResponse, error)
	stopTimerFn    func(ctx context.Context, actor task.Actor, id string) (task.TaskResponse, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeService) Create(ctx context.Context, actor task.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeService) GetAll(ctx context.Context, actor task.Actor) ([]task.TaskResponse, error) {
	return f.getAllFn(ctx, actor)
}
func (f *fakeService) GetByID(ctx context.Context, actor task.Actor, id string) (task.TaskResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}
func (f *fakeService) UpdateStatus(ctx context.Context, actor task.Actor, id string, req task.UpdateTaskStatusRequest) (task.TaskResponse, error) {
	return f.updateStatusFn(ctx, actor, id, req)
}
func (f *fakeService) StartTimer(ctx context.Context, actor task.Actor, id string) (task.TaskResponse, error) {
	return f.startTimerFn(ctx, actor, id)
}
func (f *fakeService) StopTimer(ctx context.Context, actor task.Actor, id string) (task.TaskResponse, error) {
	return f.stopTimerFn(ctx, actor, id)
}
func (f *fakeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	managerID := uuid.New().String()

	svc := &fakeService{
		createFn: func(ctx context.Context, actor task.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
			assert.Equal(t, managerID, actor.UserID)
			assert.Equal(t, "Ship quarterly report", req.Title)
			return task.TaskResponse{
				ID:         uuid.New().String(),
				EmployeeID: req.EmployeeID,
				AssignedBy: managerID,
				Title:      req.Title,
				Status:     task.StatusPending,
			}, nil
		},
	}
	h := task.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", managerID)
	c.Set("role", domain.RoleManager)
	body := `{"employee_id":"` + employeeID + `","title":"Ship quarterly report","due_date":"2026-09-15"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Ship quarterly report")
}

func TestHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := task.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPut, "/tasks/x/status", strings.NewReader(`{"status":"done"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_StartTimer_AlreadyRunning(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New().String()

	svc := &fakeService{
		startTimerFn: func(ctx context.Context, actor task.Actor, gotID string) (task.TaskResponse, error) {
			assert.Equal(t, id, gotID)
			return task.TaskResponse{}, taskerrors.ErrTimerAlreadyRunning
		},
	}
	h := task.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodPost, "/tasks/"+id+"/timer/start", nil)
	h.StartTimer(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestHandler_StopTimer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New().String()

	svc := &fakeService{
		stopTimerFn: func(ctx context.Context, actor task.Actor, gotID string) (task.TaskResponse, error) {
			return task.TaskResponse{ID: gotID, Status: task.StatusInProgress, TimeSpentSeconds: 3600, TimerRunning: false}, nil
		},
	}
	h := task.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodPost, "/tasks/"+id+"/timer/stop", nil)
	h.StopTimer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"time_spent_seconds":3600`)
}

// With the idempotency keys armed, a successful create caches its response
// and releases the lock so a retried Idempotency-Key replays instead of
// assigning the task twice.
func TestHandler_Create_CachesResponseAndReleasesLock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	resp := task.TaskResponse{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Title:      "Ship quarterly report",
		Status:     task.StatusPending,
	}
	svc := &fakeService{
		createFn: func(ctx context.Context, actor task.Actor, req task.CreateTaskRequest) (task.TaskResponse, error) {
			return resp, nil
		},
	}

	cacheKey := "idemp:/api/tasks:user-1:key-3"
	lockKey := cacheKey + ":lock"

	rdb, mock := redismock.NewClientMock()
	payload, err := json.Marshal(resp)
	assert.NoError(t, err)
	mock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	h := task.NewHandlerWithRedis(svc, rdb)

	body := `{"employee_id":"` + employeeID + `","title":"Ship quarterly report"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("idempotency_cache_key", cacheKey)
	c.Set("idempotency_lock_key", lockKey)
	c.Request = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
