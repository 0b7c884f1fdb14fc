// AngelaMos | 2026
// settings_test.go

package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	rows     []Setting
	upserted *Setting
}

func (f *fakeSettingsRepo) GetPublic(ctx context.Context) ([]Setting, error) {
	var public []Setting
	for _, s := range f.rows {
		if s.Public {
			public = append(public, s)
		}
	}
	return public, nil
}

func (f *fakeSettingsRepo) GetAll(ctx context.Context) ([]Setting, error) {
	return f.rows, nil
}

func (f *fakeSettingsRepo) Get(ctx context.Context, key string) (*Setting, error) {
	for i := range f.rows {
		if f.rows[i].Key == key {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, setting *Setting) error {
	f.upserted = setting
	return nil
}

func TestPublicSettings_FiltersPrivateKeys(t *testing.T) {
	repo := &fakeSettingsRepo{rows: []Setting{
		{Key: "store_name", Value: "Artisan Market", Public: true},
		{Key: "currency", Value: "USD", Public: true},
		{Key: "smtp_password", Value: "hunter2", Public: false},
	}}
	svc := NewService(repo)

	out, err := svc.PublicSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"store_name": "Artisan Market",
		"currency":   "USD",
	}, out)
}

func TestUpdateSetting(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo)

	setting, err := svc.UpdateSetting(
		context.Background(),
		"store_name",
		"Night Market",
		true,
	)
	require.NoError(t, err)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, "store_name", repo.upserted.Key)
	assert.Equal(t, "Night Market", setting.Value)
	assert.True(t, setting.Public)
}
