package status

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/songbrowser/internal/events"
)

func TestOverlay_HiddenByDefault(t *testing.T) {
	o := New(0)
	assert.False(t, o.State().Visible)
	assert.Equal(t, DefaultDismissAfter, o.dismissAfter)
}

func TestOverlay_ShowMessage_Persists(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		o := New(time.Second)
		o.ShowMessage("hello")

		time.Sleep(time.Hour)
		synctest.Wait()

		s := o.State()
		assert.True(t, s.Visible)
		assert.Equal(t, "hello", s.Message)
		assert.False(t, s.Progress)
	})
}

func TestOverlay_ShowMessageFor_AutoHides(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		o := New(time.Minute)
		o.ShowMessageFor("saved", 5*time.Second)

		time.Sleep(4 * time.Second)
		synctest.Wait()
		assert.True(t, o.State().Visible)

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.False(t, o.State().Visible)
	})
}

func TestOverlay_ReplacedMessageKeepsShowing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		o := New(time.Minute)
		o.ShowMessageFor("first", 5*time.Second)

		time.Sleep(3 * time.Second)
		o.ShowMessage("second")

		time.Sleep(10 * time.Second)
		synctest.Wait()

		s := o.State()
		assert.True(t, s.Visible)
		assert.Equal(t, "second", s.Message)
	})
}

func TestOverlay_Hide(t *testing.T) {
	o := New(0)
	o.ShowMessage("hello")
	o.Hide()
	assert.False(t, o.State().Visible)
}

func TestOverlay_LoadLifecycle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		bus := events.NewBus()
		o := New(20 * time.Second)
		release := o.Attach(bus)
		defer release()

		bus.PublishLoadStarted()
		synctest.Wait()
		s := o.State()
		assert.True(t, s.Visible)
		assert.Equal(t, LoadingMessage, s.Message)
		assert.True(t, s.Progress)

		bus.PublishLoadProgress(5, 10)
		synctest.Wait()
		s = o.State()
		assert.Equal(t, 5, s.Current)
		assert.Equal(t, 10, s.Total)

		bus.PublishLoadFinished(1234)
		synctest.Wait()
		s = o.State()
		assert.True(t, s.Visible)
		assert.Equal(t, "1,234 songs processed", s.Message)
		assert.False(t, s.Progress)

		time.Sleep(19 * time.Second)
		synctest.Wait()
		assert.True(t, o.State().Visible)

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.False(t, o.State().Visible)
	})
}

func TestOverlay_StaleLoadEventsIgnored(t *testing.T) {
	o := New(time.Minute)

	o.loadFinished(events.LoadFinished{Seq: 3, Count: 7})
	o.loadStarted(events.LoadStarted{Seq: 1})
	o.loadProgress(events.LoadProgress{Seq: 2, Current: 1, Total: 7})

	s := o.State()
	assert.Equal(t, FinishedMessage(7), s.Message)
	assert.False(t, s.Progress)
	assert.Zero(t, s.Current)
}

func TestOverlay_Navigation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		bus := events.NewBus()
		o := New(20 * time.Second)
		release := o.Attach(bus)
		defer release()

		bus.PublishLoadStarted()
		bus.Navigate(events.ScreenGameplay)
		synctest.Wait()
		assert.False(t, o.State().Visible, "hidden away from the browser")

		bus.Navigate(events.ScreenBrowser)
		synctest.Wait()
		assert.True(t, o.State().Visible, "loading message comes back")

		bus.PublishLoadFinished(3)
		synctest.Wait()
		bus.Navigate(events.ScreenSettings)
		synctest.Wait()
		assert.False(t, o.State().Visible)

		bus.Navigate(events.ScreenBrowser)
		synctest.Wait()
		assert.False(t, o.State().Visible, "summary is not restored")
	})
}

func TestOverlay_AttachRelease(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		bus := events.NewBus()
		o := New(0)
		release := o.Attach(bus)

		release()
		release()

		bus.PublishLoadStarted()
		synctest.Wait()
		assert.False(t, o.State().Visible)
	})
}

func TestOverlay_AttachStopsWhenBusCloses(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		bus := events.NewBus()
		o := New(0)
		release := o.Attach(bus)

		bus.Close()
		synctest.Wait()
		release()
	})
}

func TestOverlay_OnChange(t *testing.T) {
	o := New(0)
	var got []State
	o.OnChange(func(s State) { got = append(got, s) })

	o.ShowMessage("a")
	o.Hide()

	if assert.Len(t, got, 2) {
		assert.True(t, got[0].Visible)
		assert.Equal(t, "a", got[0].Message)
		assert.False(t, got[1].Visible)
	}
}

func TestOverlay_ReleaseAppliesPendingEvents(t *testing.T) {
	bus := events.NewBus()
	o := New(time.Minute)
	release := o.Attach(bus)

	bus.PublishLoadStarted()
	bus.PublishLoadFinished(2)
	release()

	s := o.State()
	assert.True(t, s.Visible)
	assert.Equal(t, "2 songs processed", s.Message)
}

func TestProgressText(t *testing.T) {
	assert.Equal(t, "0/0", ProgressText(0, 0))
	assert.Equal(t, "12/40", ProgressText(12, 40))
	assert.Equal(t, "1,024/12,000", ProgressText(1024, 12000))
}
