package transit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func text(s string) *gtfs.TranslatedString {
	return &gtfs.TranslatedString{
		Translation: []*gtfs.TranslatedString_Translation{{Text: proto.String(s), Language: proto.String("en")}},
	}
}

func alertEntity(id string, routes []string, periods ...*gtfs.TimeRange) *gtfs.FeedEntity {
	var informed []*gtfs.EntitySelector
	for _, r := range routes {
		informed = append(informed, &gtfs.EntitySelector{RouteId: proto.String(r)})
	}
	return &gtfs.FeedEntity{
		Id: proto.String(id),
		Alert: &gtfs.Alert{
			ActivePeriod:    periods,
			InformedEntity:  informed,
			HeaderText:      text(id + " delays"),
			DescriptionText: text("expect longer waits"),
		},
	}
}

func period(start, end time.Time) *gtfs.TimeRange {
	tr := &gtfs.TimeRange{Start: proto.Uint64(uint64(start.Unix()))}
	if !end.IsZero() {
		tr.End = proto.Uint64(uint64(end.Unix()))
	}
	return tr
}

func testFeed(t *testing.T) []byte {
	t.Helper()
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			alertEntity("always", []string{"A", "A", "C"}),
			alertEntity("current", []string{"L"}, period(fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour))),
			alertEntity("open-ended", []string{"7"}, period(fixedNow.Add(-time.Hour), time.Time{})),
			alertEntity("expired", []string{"A"}, period(fixedNow.Add(-2*time.Hour), fixedNow.Add(-time.Hour))),
			alertEntity("future", []string{"A"}, period(fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour))),
			{Id: proto.String("trip-update-only")},
		},
	}
	body, err := proto.Marshal(feed)
	require.NoError(t, err)
	return body
}

func newFeedServer(t *testing.T, body []byte, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newService(url string, routes []string) *AlertService {
	s := NewAlertService(url, routes, 5*time.Second, time.Minute)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestAdvisoriesActiveOnly(t *testing.T) {
	srv := newFeedServer(t, testFeed(t), nil)
	s := newService(srv.URL, nil)
	defer s.Close()

	got, err := s.Advisories(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"always", "current", "open-ended"}, ids)
	assert.Equal(t, []string{"A", "C"}, got[0].Routes)
	assert.Equal(t, "always delays", got[0].Header)
	assert.Equal(t, "expect longer waits", got[0].Description)
}

func TestAdvisoriesRouteFilter(t *testing.T) {
	srv := newFeedServer(t, testFeed(t), nil)
	s := newService(srv.URL, []string{"L", "7"})
	defer s.Close()

	got, err := s.Advisories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "current", got[0].ID)
	assert.Equal(t, "open-ended", got[1].ID)
}

func TestAdvisoriesCap(t *testing.T) {
	feed := &gtfs.FeedMessage{Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")}}
	for i := 0; i < MaxAdvisories+3; i++ {
		feed.Entity = append(feed.Entity, alertEntity(string(rune('a'+i)), nil))
	}
	body, err := proto.Marshal(feed)
	require.NoError(t, err)

	srv := newFeedServer(t, body, nil)
	s := newService(srv.URL, nil)
	defer s.Close()

	got, err := s.Advisories(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, MaxAdvisories)
}

func TestAdvisoriesCached(t *testing.T) {
	var calls atomic.Int32
	srv := newFeedServer(t, testFeed(t), &calls)
	s := newService(srv.URL, nil)
	defer s.Close()

	for i := 0; i < 3; i++ {
		_, err := s.Advisories(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestAdvisoriesFeedErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		s := newService(srv.URL, nil)
		defer s.Close()
		_, err := s.Advisories(context.Background())
		assert.Error(t, err)
	})

	t.Run("not protobuf", func(t *testing.T) {
		srv := newFeedServer(t, []byte{0xff, 0xff, 0xff}, nil)
		s := newService(srv.URL, nil)
		defer s.Close()
		_, err := s.Advisories(context.Background())
		assert.Error(t, err)
	})
}

func TestEnglishTextFallback(t *testing.T) {
	ts := &gtfs.TranslatedString{
		Translation: []*gtfs.TranslatedString_Translation{
			{Text: proto.String("Retrasos"), Language: proto.String("es")},
		},
	}
	assert.Equal(t, "Retrasos", englishText(ts))
	assert.Equal(t, "", englishText(nil))
}
