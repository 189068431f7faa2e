package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safarshare/safar/internal/catalog"
	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/pricing"
	"github.com/safarshare/safar/internal/submit"
)

type testEnv struct {
	t   *testing.T
	db  string
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &testEnv{t: t, dir: dir, db: filepath.Join(dir, "safar.db")}
}

// run executes the CLI with stdin and returns everything it printed.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()
	t := e.t
	t.Cleanup(viper.Reset)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", e.db, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(stdin string, args ...string) string {
	e.t.Helper()
	out, err := e.run(stdin, args...)
	require.NoError(e.t, err, out)
	return out
}

func parcelArgs(extra ...string) []string {
	args := []string{
		"parcel", "new", "--no-input",
		"--set", "parcelType=electronics",
		"--set", "weight=3",
		"--set", "pickupCity=Kandiaro",
		"--set", "deliveryCity=Karachi",
		"--set", "pickupDate=2099-01-10",
		"--set", "deliveryDate=2099-01-12",
		"--set", "paymentMethod=cash",
	}
	return append(args, extra...)
}

func TestParcelNewAndTrack(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", parcelArgs("--select", "1", "--accept-terms")...)
	assert.Contains(t, out, "Parcel request submitted! Request ID: ")
	assert.Contains(t, out, "Price breakdown")
	assert.Contains(t, out, "safar track last parcel")

	out = env.mustRun("", "parcel", "list")
	assert.Contains(t, out, "Kandiaro → Karachi, electronics 3.0kg, 2099-01-10")
	assert.Contains(t, out, string(model.StatusPending))

	out = env.mustRun("", "track", "last", "parcel")
	assert.Contains(t, out, "Kandiaro → Karachi")

	exported := filepath.Join(env.dir, "parcels.json")
	env.mustRun("", "export", "parcelRequests", "--output", exported)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)

	var subs []model.Submission
	require.NoError(t, json.Unmarshal(data, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "parcel", subs[0].Flow)

	var req model.ParcelRequest
	require.NoError(t, subs[0].DecodeFields(&req))
	assert.Equal(t, 1, req.SelectedTraveler)
	require.NotNil(t, subs[0].Price)
	assert.Equal(t, subs[0].Price.Total, req.TotalPrice)
}

func TestParcelNewRejected(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", parcelArgs()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, submit.ErrRejected)
	assert.Contains(t, out, "You must agree to the terms and conditions")

	out = env.mustRun("", "parcel", "list")
	assert.Contains(t, out, "No parcel delivery records yet.")
}

func TestParcelNewNonFiniteWeight(t *testing.T) {
	env := newTestEnv(t)

	for _, weight := range []string{"NaN", "Inf"} {
		out, err := env.run("", parcelArgs("--select", "1", "--accept-terms", "--set", "weight="+weight)...)
		require.Error(t, err)
		assert.ErrorIs(t, err, submit.ErrRejected)
		assert.Contains(t, out, "Please enter a number")
	}

	out := env.mustRun("", "parcel", "list")
	assert.Contains(t, out, "No parcel delivery records yet.")
}

func TestShoppingQuoteNaNPrice(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", "shopping", "quote", "--set", "itemPrice=NaN", "--set", "quantity=1")
	assert.Contains(t, out, "Price breakdown")
	assert.NotContains(t, out, "-9223372036854775")
}

func TestWizardUnknownField(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "shopping", "new", "--no-input", "--set", "colour=red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `shopping has no field "colour"`)

	_, err = env.run("", "shopping", "new", "--no-input", "--set", "colour")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestParcelQuote(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", "parcel", "quote",
		"--set", "pickupCity=Lahore", "--set", "deliveryCity=Karachi", "--set", "weight=2")
	assert.Contains(t, out, "Price breakdown")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "pkr ")
}

func TestContactInteractive(t *testing.T) {
	env := newTestEnv(t)

	input := strings.Join([]string{
		"Ayesha Khan",
		"not-a-contact",
		"ayesha@example.com",
		"1",
		"short",
		"Need help with my booking",
	}, "\n") + "\n"
	out := env.mustRun(input, "contact", "send")
	assert.Contains(t, out, "Please enter a valid email or phone number")
	assert.Contains(t, out, "Message should be at least 10 characters long")
	assert.Contains(t, out, "Thank you! Your message has been sent.")

	out = env.mustRun("", "contact", "list")
	assert.Contains(t, out, "general from Ayesha Khan (ayesha@example.com)")

	out = env.mustRun("n\n", "contact", "clear")
	assert.Contains(t, out, "Nothing was deleted.")

	out = env.mustRun("y\n", "contact", "clear")
	assert.Contains(t, out, "Cleared 1 message(s).")
	assert.Contains(t, out, "Backup saved as auto-contact-clear-")

	out = env.mustRun("", "contact", "list")
	assert.Contains(t, out, "No messages yet.")

	out = env.mustRun("", "contact", "clear", "--force")
	assert.Contains(t, out, "No messages yet.")

	out = env.mustRun("", "backup", "list")
	assert.Contains(t, out, "auto-contact-clear-")
	assert.Contains(t, out, "(auto)")
}

func TestContactInterrupted(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("Ayesha Khan\n", "contact", "send")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCanceled)
}

func TestCommuteJoin(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", "commute", "join", "2")
	assert.Contains(t, out, "Successfully joined Sara Khan's commute!")

	out, err := env.run("", "commute", "join", "2")
	assert.ErrorIs(t, err, catalog.ErrNoCapacity)
	assert.Contains(t, out, "No seats available for this commute")

	_, err = env.run("", "commute", "join", "999")
	assert.ErrorIs(t, err, catalog.ErrUnknownEntry)

	out = env.mustRun("", "commute", "joined")
	assert.Contains(t, out, "[2] Sara Khan")
	assert.Contains(t, out, "pkr ")
}

func TestCommuteScheduleListedFirst(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("", "commute", "schedule", "new", "--no-input",
		"--set", "scheduleName=Office run",
		"--set", "pickupPoint=Gulshan",
		"--set", "dropPoint=Saddar",
		"--set", "startTime=08:30",
		"--set", "operatingDays=mon,tue,wed",
		"--set", "availableSeats=3",
		"--set", "pricePerSeat=2000")

	out := env.mustRun("", "commute", "schedule", "list")
	assert.Contains(t, out, "Office run: Gulshan → Saddar at 08:30, 3 seats")

	out = env.mustRun("", "commute", "search", "--from", "gulshan")
	assert.Contains(t, out, "YOU")
	assert.NotContains(t, out, "Ahmed Raza")
}

func TestCatalogList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", "catalog", "list", "travelers", "--from", "Hyderabad")
	assert.Contains(t, out, "Ali Raza")
	assert.NotContains(t, out, "Mansoor Ahmed")

	out = env.mustRun("", "catalog", "show", "traveler", "1")
	assert.Contains(t, out, "Mansoor Ahmed")

	_, err := env.run("", "catalog", "list", "pilots")
	assert.Error(t, err)
}

func TestCalc(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		wantErr error
		args    []string
		want    []string
	}{
		{
			name: "commute savings defaults",
			args: []string{"calc", "commute-savings"},
			want: []string{"pkr 10267", "pkr 2567", "You save pkr 7700 (75%)"},
		},
		{
			name: "trip share",
			args: []string{"calc", "trip-share", "--distance", "100", "--efficiency", "10", "--fuel-price", "300", "--passengers", "4"},
			want: []string{"pkr 3000", "pkr 900", "pkr 3900", "pkr 975", "Each saves pkr 2925, the group saves pkr 11700"},
		},
		{
			name:    "trip share rejects NaN",
			args:    []string{"calc", "trip-share", "--distance", "NaN", "--efficiency", "10", "--fuel-price", "300", "--passengers", "4"},
			wantErr: pricing.ErrInvalidTrip,
		},
		{
			name: "commute savings ignores NaN",
			args: []string{"calc", "commute-savings", "--distance", "NaN"},
			want: []string{"pkr 10267", "You save pkr 7700 (75%)"},
		},
		{
			name:    "trip share needs two passengers",
			args:    []string{"calc", "trip-share", "--distance", "100", "--efficiency", "10", "--fuel-price", "300", "--passengers", "1"},
			wantErr: pricing.ErrInvalidTrip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run("", tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestTrackLast(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", "track", "last", "document")
	assert.Contains(t, out, "No document requests yet.")

	_, err := env.run("", "track", "last", "contact")
	assert.Error(t, err)

	_, err = env.run("", "track", "find", "SRC-NOPE")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "No request with tracking ID SRC-NOPE", common.UserMessage(err))
}

func TestBackupLifecycle(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("", parcelArgs("--select", "1", "--accept-terms")...)
	out := env.mustRun("", "backup", "create", "--tag", "before", "-d", "one parcel")
	assert.Contains(t, out, "Created backup before")

	env.mustRun("", parcelArgs("--select", "2", "--accept-terms")...)
	out = env.mustRun("", "parcel", "list")
	assert.Contains(t, out, "Parcel delivery (2)")

	out = env.mustRun("", "backup", "restore", "before", "--force")
	assert.Contains(t, out, "Restored backup before")
	out = env.mustRun("", "parcel", "list")
	assert.Contains(t, out, "Parcel delivery (1)")

	out = env.mustRun("", "backup", "list")
	assert.Contains(t, out, "one parcel")

	env.mustRun("", "backup", "delete", "before")
	out = env.mustRun("", "backup", "list")
	assert.NotContains(t, out, "one parcel")
}

func TestMigrateStatus(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("", "migrate", "--status")
	assert.Contains(t, out, "Schema version: 0")
	assert.Contains(t, out, "Migrations pending")

	out = env.mustRun("", "migrate")
	assert.Contains(t, out, "Migrated schema from version 0 to 3")

	out = env.mustRun("", "migrate", "--status")
	assert.Contains(t, out, "Up to date")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("", "version")
	assert.Equal(t, "safar dev\n", out)
}
