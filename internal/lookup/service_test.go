package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VijayAsokkumar/VigilAI/pkg/market"
	"github.com/VijayAsokkumar/VigilAI/pkg/news"
)

type fakeMarket struct {
	day        *market.DayRecord
	dayErr     error
	history    []market.DayRecord
	historyErr error
	profile    *market.Profile
	profileErr error

	latestCalls  []string
	historyCalls []string
	periods      []string
	profileCalls []string
}

func (f *fakeMarket) Name() string { return "Fake" }

func (f *fakeMarket) LatestDay(_ context.Context, symbol string) (*market.DayRecord, error) {
	f.latestCalls = append(f.latestCalls, symbol)
	return f.day, f.dayErr
}

func (f *fakeMarket) History(_ context.Context, symbol, period string) ([]market.DayRecord, error) {
	f.historyCalls = append(f.historyCalls, symbol)
	f.periods = append(f.periods, period)
	return f.history, f.historyErr
}

func (f *fakeMarket) Profile(_ context.Context, symbol string) (*market.Profile, error) {
	f.profileCalls = append(f.profileCalls, symbol)
	return f.profile, f.profileErr
}

type fakeNews struct {
	result  *news.SearchResult
	err     error
	queries []string
}

func (f *fakeNews) Name() string { return "FakeNews" }

func (f *fakeNews) Search(_ context.Context, query string) (*news.SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.result, f.err
}

func okNews(articles ...string) *news.SearchResult {
	res := &news.SearchResult{Status: news.StatusOK, TotalResults: len(articles), Articles: []json.RawMessage{}}
	for _, a := range articles {
		res.Articles = append(res.Articles, json.RawMessage(a))
	}
	return res
}

func newTestService(m *fakeMarket, n *fakeNews) *Service {
	return NewService(m, n, Options{ExchangeSuffix: DefaultExchangeSuffix})
}

var ist = time.FixedZone("IST", 5*3600+1800)

func TestQuote(t *testing.T) {
	price := 3810.4
	m := &fakeMarket{
		day: &market.DayRecord{
			Time:   time.Date(2024, 1, 2, 9, 15, 0, 0, ist),
			Open:   3790,
			High:   3822.5,
			Low:    3751.1,
			Close:  3803.25,
			Volume: 1843235,
		},
		profile: &market.Profile{Symbol: "TCS.NS", Price: &price},
	}
	svc := newTestService(m, &fakeNews{})

	q, err := svc.Quote(context.Background(), "TCS")
	require.NoError(t, err)

	assert.Equal(t, []string{"TCS.NS"}, m.latestCalls)
	assert.Equal(t, []string{"TCS.NS"}, m.profileCalls)
	assert.Equal(t, "TCS", q.Symbol)
	assert.True(t, q.CurrentPrice.Known)
	assert.Equal(t, 3810.4, q.CurrentPrice.Value)
	assert.Equal(t, 3790.0, q.Open)
	assert.Equal(t, 3803.25, q.Close)
	assert.Equal(t, 3822.5, q.High)
	assert.Equal(t, 3751.1, q.Low)
	assert.Equal(t, int64(1843235), q.Volume)
	assert.Equal(t, "2024-01-02", q.Date)
}

func TestQuote_DateUsesRecordTimezone(t *testing.T) {
	// 00:30 IST on Jan 3 is still Jan 2 in UTC.
	m := &fakeMarket{
		day:     &market.DayRecord{Time: time.Date(2024, 1, 3, 0, 30, 0, 0, ist)},
		profile: &market.Profile{},
	}

	q, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "TCS")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", q.Date)
}

func TestQuote_PriceUnavailable(t *testing.T) {
	m := &fakeMarket{
		day:     &market.DayRecord{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 10},
		profile: &market.Profile{Symbol: "TCS.NS"},
	}

	q, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "TCS")
	require.NoError(t, err)
	assert.False(t, q.CurrentPrice.Known)
	assert.Equal(t, "N/A", q.CurrentPrice.String())
}

func TestQuote_NilProfile(t *testing.T) {
	m := &fakeMarket{day: &market.DayRecord{Time: time.Now()}}

	q, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "TCS")
	require.NoError(t, err)
	assert.False(t, q.CurrentPrice.Known)
}

func TestQuote_NotFound(t *testing.T) {
	m := &fakeMarket{}

	q, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Nil(t, q)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.ErrorIs(t, err, ErrStockDataNotFound)
	assert.Equal(t, "Stock data not found", err.Error())
	assert.Empty(t, m.profileCalls)
}

func TestQuote_UpstreamErrors(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("latest day", func(t *testing.T) {
		m := &fakeMarket{dayErr: cause}
		_, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "TCS")
		require.Error(t, err)
		assert.Equal(t, KindUpstream, KindOf(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "TCS.NS")
	})

	t.Run("profile", func(t *testing.T) {
		m := &fakeMarket{day: &market.DayRecord{}, profileErr: cause}
		_, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "TCS")
		require.Error(t, err)
		assert.Equal(t, KindUpstream, KindOf(err))
		assert.ErrorIs(t, err, cause)
	})
}

func TestQuote_EmptySymbol(t *testing.T) {
	m := &fakeMarket{}

	_, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.ErrorIs(t, err, ErrEmptySymbol)
	assert.Empty(t, m.latestCalls)
}

func TestQuote_SymbolSentVerbatim(t *testing.T) {
	m := &fakeMarket{}

	_, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "TCS NS")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, []string{"TCS NS.NS"}, m.latestCalls)
}

func TestQuote_KeepsSymbolAsSupplied(t *testing.T) {
	m := &fakeMarket{day: &market.DayRecord{}, profile: &market.Profile{}}

	q, err := newTestService(m, &fakeNews{}).Quote(context.Background(), "infy")
	require.NoError(t, err)
	assert.Equal(t, "infy", q.Symbol)
	assert.Equal(t, []string{"infy.NS"}, m.latestCalls)
}

func TestCompanyNews(t *testing.T) {
	n := &fakeNews{result: okNews(`{"title":"a"}`, `{"title":"b","source":{"id":null}}`)}
	m := &fakeMarket{}

	articles, err := newTestService(m, n).CompanyNews(context.Background(), "M&M")
	require.NoError(t, err)

	assert.Equal(t, []string{"M&M"}, n.queries)
	require.Len(t, articles, 2)
	assert.JSONEq(t, `{"title":"a"}`, string(articles[0]))
	assert.JSONEq(t, `{"title":"b","source":{"id":null}}`, string(articles[1]))
	assert.Empty(t, m.latestCalls)
}

func TestCompanyNews_FreeTextQuery(t *testing.T) {
	n := &fakeNews{result: okNews()}
	svc := newTestService(&fakeMarket{}, n)

	for _, s := range []string{"Tata Motors", " infy ", "टाटा", "RELIANCE?"} {
		_, err := svc.CompanyNews(context.Background(), s)
		require.NoError(t, err, s)
	}
	assert.Equal(t, []string{"Tata Motors", " infy ", "टाटा", "RELIANCE?"}, n.queries)
}

func TestCompanyNews_Empty(t *testing.T) {
	n := &fakeNews{result: &news.SearchResult{Status: news.StatusOK}}

	articles, err := newTestService(&fakeMarket{}, n).CompanyNews(context.Background(), "TCS")
	require.NoError(t, err)
	require.NotNil(t, articles)
	assert.Empty(t, articles)

	b, err := json.Marshal(articles)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestCompanyNews_ErrorStatus(t *testing.T) {
	n := &fakeNews{result: &news.SearchResult{Status: "error", Code: "apiKeyInvalid", Message: "Your API key is invalid."}}

	_, err := newTestService(&fakeMarket{}, n).CompanyNews(context.Background(), "TCS")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Contains(t, err.Error(), "Your API key is invalid.")
}

func TestCompanyNews_TransportError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	n := &fakeNews{err: cause}

	_, err := newTestService(&fakeMarket{}, n).CompanyNews(context.Background(), "TCS")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestIndustryNews_QueryIndependentOfSymbol(t *testing.T) {
	n := &fakeNews{result: okNews(`{"title":"it"}`)}
	svc := newTestService(&fakeMarket{}, n)

	first, err := svc.IndustryNews(context.Background(), "TCS")
	require.NoError(t, err)
	second, err := svc.IndustryNews(context.Background(), "RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, []string{DefaultIndustryQuery, DefaultIndustryQuery}, n.queries)
	assert.Equal(t, first, second)
}

func TestIndustryNews_ConfiguredQuery(t *testing.T) {
	n := &fakeNews{result: okNews()}
	svc := NewService(&fakeMarket{}, n, Options{IndustryQuery: "Banking"})

	_, err := svc.IndustryNews(context.Background(), "HDFCBANK")
	require.NoError(t, err)
	assert.Equal(t, []string{"Banking"}, n.queries)
}

func TestIndustryNews_AnySymbol(t *testing.T) {
	n := &fakeNews{result: okNews()}
	svc := newTestService(&fakeMarket{}, n)

	for _, s := range []string{"", "Tata Motors", "RELIANCE?", "टाटा"} {
		_, err := svc.IndustryNews(context.Background(), s)
		require.NoError(t, err, s)
	}
	assert.Equal(t, []string{DefaultIndustryQuery, DefaultIndustryQuery, DefaultIndustryQuery, DefaultIndustryQuery}, n.queries)
}

func TestIndustryNews_ErrorStatus(t *testing.T) {
	n := &fakeNews{result: &news.SearchResult{Status: "error", Code: "rateLimited", Message: "You have made too many requests recently."}}

	articles, err := newTestService(&fakeMarket{}, n).IndustryNews(context.Background(), "TCS")
	require.Error(t, err)
	assert.Nil(t, articles)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Contains(t, err.Error(), "too many requests")
}

func TestIndustryNews_TransportError(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	n := &fakeNews{err: cause}

	_, err := newTestService(&fakeMarket{}, n).IndustryNews(context.Background(), "TCS")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestPerformance(t *testing.T) {
	m := &fakeMarket{history: []market.DayRecord{
		{Time: time.Date(2024, 1, 2, 9, 15, 0, 0, ist), Close: 100.5},
		{Time: time.Date(2024, 1, 3, 9, 15, 0, 0, ist), Close: 101.25},
		{Time: time.Date(2024, 1, 4, 9, 15, 0, 0, ist), Close: 99.75},
	}}

	points, err := newTestService(m, &fakeNews{}).Performance(context.Background(), "INFY")
	require.NoError(t, err)

	assert.Equal(t, []string{"INFY.NS"}, m.historyCalls)
	assert.Equal(t, []string{market.Period6mo}, m.periods)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.Equal(t, 100.5, points[0].Price)
	assert.Equal(t, "2024-01-04", points[2].Date)
	assert.Equal(t, 99.75, points[2].Price)
}

func TestPerformance_EmptySymbol(t *testing.T) {
	m := &fakeMarket{}

	_, err := newTestService(m, &fakeNews{}).Performance(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, m.historyCalls)
}

func TestPerformance_EmptyHistory(t *testing.T) {
	points, err := newTestService(&fakeMarket{}, &fakeNews{}).Performance(context.Background(), "ZZZZ")
	require.NoError(t, err)
	require.NotNil(t, points)
	assert.Empty(t, points)
}

func TestPerformance_UpstreamError(t *testing.T) {
	m := &fakeMarket{historyErr: errors.New("yahoo: rate limited")}

	_, err := newTestService(m, &fakeNews{}).Performance(context.Background(), "INFY")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))

	wrapped := errors.Join(errors.New("outer"), newError(KindNotFound, "quote", "X", ErrStockDataNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "not found", KindNotFound.String())
}
