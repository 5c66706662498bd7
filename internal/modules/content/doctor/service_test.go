package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localherald/core/internal/store/storetest"
)

func newTestService(t *testing.T) (*Service, *storetest.Server) {
	t.Helper()
	srv := storetest.New()
	t.Cleanup(srv.Close)
	return NewService(srv.Client()), srv
}

func TestListOrdersByEditorialOrder(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Seed(map[string]interface{}{"_type": "doctor", "name": "Dr. B", "order": 2})
	srv.Seed(map[string]interface{}{"_type": "doctor", "name": "Dr. A", "order": 1})
	srv.Seed(map[string]interface{}{"_type": "doctor", "name": "Dr. Off", "order": 0, "active": false})

	got, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Dr. A", got[0].Name)
	assert.Equal(t, "Dr. B", got[1].Name)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, srv := newTestService(t)

	created, err := svc.Create(context.Background(), &CreateDoctorDTO{Name: "Dr. Nair", Specialization: "Cardiology"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	phone := "0481-2345678"
	updated, err := svc.Update(context.Background(), &UpdateDoctorDTO{ID: created.ID, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Cardiology", updated.Specialization)

	_, err = svc.Update(context.Background(), &UpdateDoctorDTO{})
	assert.ErrorIs(t, err, errMissingID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, srv.Documents("doctor"))
}
