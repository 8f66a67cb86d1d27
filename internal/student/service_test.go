package student

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeStudentStore struct {
	mu       sync.Mutex
	students map[primitive.ObjectID]*Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[primitive.ObjectID]*Student)}
}

func (f *fakeStudentStore) FindByEmailOrStudentID(ctx context.Context, email, studentID string) (*Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.Email == email || s.StudentID == studentID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) Create(ctx context.Context, student *Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *student
	f.students[student.ID] = &cp
	return nil
}

func (f *fakeStudentStore) List(ctx context.Context) ([]*Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Student, 0, len(f.students))
	for _, s := range f.students {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStudentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	if v, ok := updates["name"].(string); ok {
		s.Name = v
	}
	if v, ok := updates["email"].(string); ok {
		s.Email = v
	}
	if v, ok := updates["phone"].(string); ok {
		s.Phone = v
	}
	if v, ok := updates["major"].(string); ok {
		s.Major = v
	}
	if v, ok := updates["status"].(string); ok {
		s.Status = v
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.students[id]; !ok {
		return false, nil
	}
	delete(f.students, id)
	return true, nil
}

func newTestService(t *testing.T) (*Service, *fakeStudentStore) {
	t.Helper()
	store := newFakeStudentStore()
	return NewServiceWithStore(store, zap.NewNop()), store
}

func TestCreateRequiresCoreFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStudentRequest{Name: "A", Email: "a@pfw.edu"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Create(ctx, CreateStudentRequest{Email: "a@pfw.edu", StudentID: "9001"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStudentRequest{Name: "A", Email: "A@pfw.edu", StudentID: "9001"})
	require.NoError(t, err)

	// same email, different case
	_, err = svc.Create(ctx, CreateStudentRequest{Name: "B", Email: "a@pfw.edu", StudentID: "9002"})
	assert.ErrorIs(t, err, ErrStudentExists)

	// same student id
	_, err = svc.Create(ctx, CreateStudentRequest{Name: "C", Email: "c@pfw.edu", StudentID: "9001"})
	assert.ErrorIs(t, err, ErrStudentExists)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateStudentRequest{Name: "A", Email: "a@pfw.edu", StudentID: "9001", Major: "CS"})
	require.NoError(t, err)

	major := "Math"
	updated, err := svc.Update(ctx, created.ID, UpdateStudentRequest{Major: &major})
	require.NoError(t, err)
	assert.Equal(t, "Math", updated.Major)
	assert.Equal(t, "A", updated.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Math", got.Major)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestUpdateMissingStudent(t *testing.T) {
	svc, _ := newTestService(t)
	name := "X"
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), UpdateStudentRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}
