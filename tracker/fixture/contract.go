// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// Public API.

const (
	BasePath = "/public/v1/tracking/references"

	DeliveredParcelTrackID = "00AB1234"
	DeliveredParcel        = `{"parcels":[{"timestamp":"2019-12-12T12:29:41","status":"DELIVERED","trackid":"00AB1234","references":[],"events":[]}]}`
	InTransitParcelTrackID = "00CD5678"
	// Two references and events, in the order the API returns them.
	InTransitParcel = `{
  "parcels": [
    {
      "timestamp": "2019-12-11T08:15:00",
      "status": "INTRANSIT",
      "trackid": "00CD5678",
      "references": [
        {"type": "CUSTREF", "name": "Customer's own reference number", "value": "123456"},
        {"type": "UNITNO", "name": "GLS parcel number", "value": "00CD5678"}
      ],
      "events": [
        {"timestamp": "2019-12-10T18:02:11", "description": "The parcel was handed over to GLS.", "location": "Paris", "country": "FR", "code": "1.0"},
        {"timestamp": "2019-12-11T08:15:00", "description": "The parcel has reached the parcel center.", "location": "Vitry sur Seine", "country": "FR", "code": "2.106"}
      ]
    }
  ]
}`
)

type (
	// API is a fake parcel tracking API, recording every request it gets.
	API struct {
		server    *httptest.Server
		mx        *sync.Mutex
		requests  []*RecordedRequest
		responder http.HandlerFunc
	}
	RecordedRequest struct {
		Header       http.Header
		Method       string
		Path         string
		Username     string
		Password     string
		HasBasicAuth bool
	}
)
