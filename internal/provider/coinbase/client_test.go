package coinbase_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pricesync/internal/fault"
	"pricesync/internal/provider/coinbase"
)

var mockCatalogResponse = map[string]any{
	"data": []map[string]any{
		{"code": "BTC", "name": "Bitcoin", "color": "#F7931A", "type": "crypto"},
		{"code": "eth", "name": "Ethereum", "color": "#627EEA", "type": "crypto"},
	},
}

var mockRatesResponse = map[string]any{
	"data": map[string]any{
		"currency": "ETH",
		"rates": map[string]string{
			"USD": "3000.00",
			"EUR": "2761.5",
			"BTC": "0.0525",
		},
	},
}

func encode(t *testing.T, status int, body any) *http.Response {
	t.Helper()

	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(body))

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
	}
}

func TestCryptoAssets(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "/v2/currencies/crypto", req.URL.Path)

			return encode(t, http.StatusOK, mockCatalogResponse), nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient), coinbase.WithBaseURL("http://coinbase.local/v2"))

	// Act: list the catalog
	assets, err := client.CryptoAssets(testContext(t))
	require.NoError(t, err)

	// Assert: codes are upper-cased, names kept verbatim
	require.Equal(t, map[string]string{"BTC": "Bitcoin", "ETH": "Ethereum"}, assets)
}

func TestCryptoAssets_NonSuccessCarriesStatus(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader(`{"errors":[]}`)),
			}, nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient))

	assets, err := client.CryptoAssets(testContext(t))
	require.ErrorIs(t, err, fault.ErrUpstreamUnavailable)
	require.Nil(t, assets)

	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusTooManyRequests, fe.Status)
}

func TestCryptoRates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/v2/exchange-rates", req.URL.Path)
			require.Equal(t, "ETH", req.URL.Query().Get("currency"))

			return encode(t, http.StatusOK, mockRatesResponse), nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient), coinbase.WithBaseURL("http://coinbase.local/v2/"))

	// Act: request with a lower-case asset code
	rates, err := client.CryptoRates(testContext(t), "eth")
	require.NoError(t, err)

	require.Len(t, rates, 3)
	require.InEpsilon(t, 3000.0, rates["USD"], 0.0001)
	require.InEpsilon(t, 0.0525, rates["BTC"], 0.0001)
}

func TestCryptoRates_RejectedCodeIsUnknownAsset(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusBadRequest,
				Body:       io.NopCloser(strings.NewReader(`{"errors":[{"id":"invalid_request","message":"Invalid currency"}]}`)),
			}, nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient))

	_, err := client.CryptoRates(testContext(t), "NOPE")
	require.ErrorIs(t, err, fault.ErrUnknownAsset)
}

func TestCryptoRates_ServerErrorIsUpstreamUnavailable(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient))

	_, err := client.CryptoRates(testContext(t), "BTC")
	require.ErrorIs(t, err, fault.ErrUpstreamUnavailable)
}

func TestCryptoRates_ErrPerformingRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, fmt.Errorf("dial tcp: timeout")).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient))

	rates, err := client.CryptoRates(testContext(t), "BTC")
	require.ErrorIs(t, err, fault.ErrUpstreamUnavailable)
	require.Nil(t, rates)
}

func TestCryptoRates_MalformedPayloads(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"no data":          map[string]any{"warnings": []string{}},
		"no rates":         map[string]any{"data": map[string]any{"currency": "BTC"}},
		"rates not object": map[string]any{"data": map[string]any{"rates": []string{"USD"}}},
		"non numeric":      map[string]any{"data": map[string]any{"rates": map[string]string{"USD": "n/a"}}},
		"boolean rate":     map[string]any{"data": map[string]any{"rates": map[string]bool{"USD": true}}},
		"not finite":       map[string]any{"data": map[string]any{"rates": map[string]string{"USD": "Inf"}}},
	}

	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().
				Do(gomock.Any()).
				DoAndReturn(func(req *http.Request) (*http.Response, error) {
					return encode(t, http.StatusOK, payload), nil
				}).
				Times(1)

			client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient))

			_, err := client.CryptoRates(testContext(t), "BTC")
			require.ErrorIs(t, err, fault.ErrUpstreamFormat)
		})
	}
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "2024-01-01", req.Header.Get("CB-VERSION"))

			return encode(t, http.StatusOK, mockCatalogResponse), nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient), coinbase.WithHeader(http.Header{
		"CB-VERSION": []string{"2024-01-01"},
	}))

	_, err := client.CryptoAssets(testContext(t))
	require.NoError(t, err)
}
