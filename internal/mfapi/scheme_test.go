package mfapi_test

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"finboard/internal/mfapi"
)

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func TestScheme_NormalizesNewestEntry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.True(t, strings.HasSuffix(req.URL.Path, "/119551"), "scheme code in path: %s", req.URL.String())
			return respond(http.StatusOK, `{
				"meta":{"scheme_name":"X","fund_type":"Open","scheme_category":"Equity"},
				"data":[{"nav":"45.67","date":"01-01-2024"},{"nav":"45.10","date":"31-12-2023"}]
			}`)
		}).
		Times(1)

	client := mfapi.NewClient(mfapi.WithHTTPClient(httpClient))
	got, err := client.Scheme(t.Context(), "119551")
	require.NoError(t, err)
	require.Equal(t, mfapi.FundResult{
		SchemeCode:   "119551",
		SchemeName:   "X",
		CurrentNAV:   45.67,
		Date:         "01-01-2024",
		FundType:     "Open",
		FundCategory: "Equity",
	}, got)
}

func TestScheme_MetaDefaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"meta":{},"data":[]}`)
		}).
		Times(1)

	client := mfapi.NewClient(mfapi.WithHTTPClient(httpClient))
	got, err := client.Scheme(t.Context(), "1")
	require.NoError(t, err)
	require.Equal(t, "Unknown", got.SchemeName)
	require.Equal(t, "Unknown", got.FundType)
	require.Equal(t, "", got.FundCategory)
	require.Equal(t, 0.0, got.CurrentNAV)
	require.Equal(t, "", got.Date)
}

func TestScheme_ProviderReportedError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"error":"scheme not found"}`)
		}).
		Times(1)

	client := mfapi.NewClient(mfapi.WithHTTPClient(httpClient))
	_, err := client.Scheme(t.Context(), "0")
	require.ErrorIs(t, err, mfapi.ErrProviderReported)
}

func TestScheme_StatusPassthrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusBadGateway, `bad gateway`)
		}).
		Times(1)

	client := mfapi.NewClient(mfapi.WithHTTPClient(httpClient))
	_, err := client.Scheme(t.Context(), "119551")
	var se *mfapi.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadGateway, se.Code)
}

func TestScheme_InvalidJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `<html>not json</html>`)
		}).
		Times(1)

	client := mfapi.NewClient(mfapi.WithHTTPClient(httpClient))
	_, err := client.Scheme(t.Context(), "119551")
	require.ErrorIs(t, err, mfapi.ErrInvalidPayload)
}

func TestScheme_TransportFault(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	client := mfapi.NewClient(mfapi.WithHTTPClient(httpClient))
	_, err := client.Scheme(t.Context(), "119551")
	require.Error(t, err)
	require.NotErrorIs(t, err, mfapi.ErrProviderReported)
}

func TestNormalizeScheme_IgnoresAllButFirstEntry(t *testing.T) {
	t.Parallel()

	got := mfapi.NormalizeScheme("42", mfapi.SchemePayload{
		Meta: map[string]any{"scheme_name": "Y"},
		Data: []mfapi.NAVRecord{
			{NAV: "10.50", Date: "02-01-2024"},
			{NAV: "99.99", Date: "01-01-2024"},
		},
	})
	require.Equal(t, 10.50, got.CurrentNAV)
	require.Equal(t, "02-01-2024", got.Date)
}

func TestNewClient_Options(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.True(t, strings.HasPrefix(req.URL.String(), "http://localhost:9999"))
			require.Equal(t, "bar", req.Header.Get("foo"))
			return respond(http.StatusOK, `{"meta":{},"data":[]}`)
		}).
		Times(1)

	client := mfapi.NewClient(
		mfapi.WithHTTPClient(httpClient),
		mfapi.WithBaseURL("http://localhost:9999/mf"),
		mfapi.WithHeader(http.Header{"foo": []string{"bar"}}),
	)
	_, err := client.Scheme(t.Context(), "1")
	require.NoError(t, err)
}
