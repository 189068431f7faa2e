package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safarshare/safar/internal/validate"
)

func threeSteps() []Step {
	return []Step{
		{Name: "parcel", Title: "Parcel details", Fields: []validate.Field{
			{Name: "parcelType", Required: true},
			{Name: "weight", Checks: []validate.Check{validate.FloatRange(0.1, 20, "Weight must be between 0.1 and 20 kg")}},
		}},
		{Name: "route", Title: "Route", Fields: []validate.Field{
			{Name: "pickupCity", Required: true},
			{Name: "deliveryCity", Required: true, Checks: []validate.Check{validate.NotEqual("pickupCity", "Cities must differ")}},
		}},
		{Name: "payment", Title: "Payment", Fields: []validate.Field{
			{Name: "paymentMethod", Required: true},
		}},
	}
}

func newWizard(t *testing.T) *Wizard {
	t.Helper()
	w, err := New(threeSteps(), func() validate.Values {
		return validate.Values{"paymentMethod": "cash"}
	})
	require.NoError(t, err)
	return w
}

func TestNew_NoSteps(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestWizard_ForwardGatedByValidation(t *testing.T) {
	w := newWizard(t)
	assert.Equal(t, 0, w.Index())
	assert.Equal(t, 33, w.Progress())

	err := w.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepInvalid))

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "parcel", stepErr.Step)
	assert.Equal(t, 0, w.Index())

	fe, flagged := w.Error("parcelType")
	assert.True(t, flagged)
	assert.Equal(t, validate.KindRequired, fe.Kind)

	w.Set("parcelType", "documents")
	require.NoError(t, w.Next())
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 66, w.Progress())

	_, flagged = w.Error("parcelType")
	assert.False(t, flagged)
}

func TestWizard_BackIsUnconditional(t *testing.T) {
	w := newWizard(t)
	assert.False(t, w.Back())

	w.Set("parcelType", "documents")
	require.NoError(t, w.Next())
	w.Set("pickupCity", "Karachi")
	w.Set("deliveryCity", "karachi")

	assert.Error(t, w.Next())
	assert.True(t, w.Back())
	assert.Equal(t, 0, w.Index())
}

func TestWizard_FinalStep(t *testing.T) {
	w := newWizard(t)
	w.Set("parcelType", "documents")
	w.Set("pickupCity", "Kandiaro")
	w.Set("deliveryCity", "Karachi")

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.True(t, w.IsFinal())
	assert.Equal(t, 100, w.Progress())

	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.Index())
}

func TestWizard_ValidateFieldFlagsAndClears(t *testing.T) {
	w := newWizard(t)
	w.Set("weight", "25")

	fe := w.ValidateField("weight")
	require.NotNil(t, fe)
	assert.Equal(t, validate.KindRange, fe.Kind)

	w.Set("weight", "2.5")
	assert.Nil(t, w.ValidateField("weight"))
	_, flagged := w.Error("weight")
	assert.False(t, flagged)

	assert.Nil(t, w.ValidateField("unknown"))
}

func TestWizard_ValidateAllReturnsFirstFailingStep(t *testing.T) {
	w := newWizard(t)
	w.Set("parcelType", "documents")
	w.Set("paymentMethod", "")

	stepErr := w.ValidateAll()
	require.NotNil(t, stepErr)
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, "route", stepErr.Step)

	_, flagged := w.Error("paymentMethod")
	assert.True(t, flagged)

	w.Set("pickupCity", "Sukkur")
	w.Set("deliveryCity", "Karachi")
	w.Set("paymentMethod", "cash")
	assert.Nil(t, w.ValidateAll())
}

func TestWizard_FocusAndReset(t *testing.T) {
	w := newWizard(t)
	require.NoError(t, w.Focus(2))
	assert.True(t, w.IsFinal())
	assert.Error(t, w.Focus(3))

	w.Set("parcelType", "electronics")
	w.Set("paymentMethod", "card")
	w.ValidateField("pickupCity")

	w.Reset()
	assert.Equal(t, 0, w.Index())
	assert.Equal(t, "", w.Get("parcelType"))
	assert.Equal(t, "cash", w.Get("paymentMethod"))
	assert.Empty(t, w.Values().Get("parcelType"))
}
