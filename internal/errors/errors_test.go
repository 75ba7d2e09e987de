package errors

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderCarriesMetadata(t *testing.T) {
	err := Newf("fetch failed for %s", "loc-1").
		Component("datastore").
		Category(CategoryDatabase).
		Context("operation", "get_verified_locations").
		Build()

	assert.Equal(t, "fetch failed for loc-1", err.Error())
	assert.Equal(t, "datastore", err.GetComponent())
	assert.Equal(t, string(CategoryDatabase), err.GetCategory())
	assert.Equal(t, "get_verified_locations", err.GetContext()["operation"])
	assert.WithinDuration(t, time.Now(), err.GetTimestamp(), time.Second)
}

func TestBuildDefaultsToGenericCategory(t *testing.T) {
	err := Newf("boom").Build()
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Equal(t, ComponentUnknown, err.GetComponent())
}

func TestWrapPreservesChain(t *testing.T) {
	sentinel := fmt.Errorf("sentinel")
	wrapped := Wrap(fmt.Errorf("outer: %w", sentinel)).
		Category(CategoryNetwork).
		Build()

	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "outer: sentinel", wrapped.Error())
}

func TestIsCategory(t *testing.T) {
	notFound := Newf("event not found").Category(CategoryNotFound).Build()
	dbErr := Newf("disk full").Category(CategoryDatabase).Build()

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(dbErr))
	assert.True(t, IsCategory(dbErr, CategoryDatabase))
	assert.False(t, IsCategory(fmt.Errorf("plain"), CategoryDatabase))

	// Category checks see through wrapping.
	assert.True(t, IsNotFound(fmt.Errorf("handler: %w", notFound)))
}

type capturingReporter struct {
	mu     sync.Mutex
	errors []*EnhancedError
}

func (r *capturingReporter) Report(ee *EnhancedError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, ee)
}

func (r *capturingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

func TestReporterReceivesBuiltErrors(t *testing.T) {
	reporter := &capturingReporter{}
	SetReporter(reporter)
	t.Cleanup(func() { SetReporter(nil) })

	Newf("report me").Category(CategoryTelemetry).Build()

	require.Equal(t, 1, reporter.count())
	assert.Equal(t, CategoryTelemetry, reporter.errors[0].Category)
}

func TestNoReportingWithoutReporter(t *testing.T) {
	SetReporter(nil)
	// Build must not panic or block when no reporter is installed.
	err := Newf("quiet").Build()
	require.NotNil(t, err)
}
