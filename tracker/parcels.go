// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/gls-tracker/time"
)

// parseParcels converts a success document into parcels keyed by trackID; a repeated trackID overwrites the previous one.
func parseParcels(document json.RawMessage) (map[string]*Parcel, error) {
	var doc parcelsDocument
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, newInvalidResponseFailure(unexpectedJSONResponseFailureMessage, errors.Wrap(err, "failed to unmarshal parcels"))
	}
	if doc.Parcels == nil {
		return nil, newInvalidResponseFailure(unexpectedJSONResponseFailureMessage, errors.New("parcels are missing"))
	}
	parcels := make(map[string]*Parcel, len(*doc.Parcels))
	for ix, parcelDoc := range *doc.Parcels {
		parcel, err := parcelDoc.toParcel(fmt.Sprintf("parcels[%v]", ix))
		if err != nil {
			return nil, newInvalidResponseFailure(unexpectedJSONResponseFailureMessage, err)
		}
		parcels[parcel.TrackID] = parcel
	}

	return parcels, nil
}

func (d *parcelDocument) toParcel(path string) (*Parcel, error) {
	if d == nil {
		return nil, errors.Errorf("%v is null", path)
	}
	if err := requireFields(path,
		requiredField{name: "timestamp", value: d.Timestamp},
		requiredField{name: "status", value: d.Status},
		requiredField{name: "trackid", value: d.TrackID},
	); err != nil {
		return nil, err
	}
	if d.References == nil {
		return nil, errors.Errorf("%v is missing references", path)
	}
	if d.Events == nil {
		return nil, errors.Errorf("%v is missing events", path)
	}
	parcel := &Parcel{
		Timestamp:  *d.Timestamp,
		Status:     *d.Status,
		TrackID:    *d.TrackID,
		References: make([]*Reference, 0, len(*d.References)),
		Events:     make([]*Event, 0, len(*d.Events)),
	}
	for ix, refDoc := range *d.References {
		ref, err := refDoc.toReference(fmt.Sprintf("%v.references[%v]", path, ix))
		if err != nil {
			return nil, err
		}
		parcel.References = append(parcel.References, ref)
	}
	for ix, eventDoc := range *d.Events {
		event, err := eventDoc.toEvent(fmt.Sprintf("%v.events[%v]", path, ix))
		if err != nil {
			return nil, err
		}
		parcel.Events = append(parcel.Events, event)
	}

	return parcel, nil
}

func (d *referenceDocument) toReference(path string) (*Reference, error) {
	if d == nil {
		return nil, errors.Errorf("%v is null", path)
	}
	if err := requireFields(path,
		requiredField{name: "type", value: d.Type},
		requiredField{name: "name", value: d.Name},
		requiredField{name: "value", value: d.Value},
	); err != nil {
		return nil, err
	}

	return &Reference{Type: *d.Type, Name: *d.Name, Value: *d.Value}, nil
}

func (d *eventDocument) toEvent(path string) (*Event, error) {
	if d == nil {
		return nil, errors.Errorf("%v is null", path)
	}
	if err := requireFields(path,
		requiredField{name: "timestamp", value: d.Timestamp},
		requiredField{name: "description", value: d.Description},
		requiredField{name: "location", value: d.Location},
		requiredField{name: "country", value: d.Country},
		requiredField{name: "code", value: d.Code},
	); err != nil {
		return nil, err
	}

	return &Event{
		Timestamp:   *d.Timestamp,
		Description: *d.Description,
		Location:    *d.Location,
		Country:     *d.Country,
		Code:        *d.Code,
	}, nil
}

// Time parses Timestamp, the time of the parcel's last event.
func (p *Parcel) Time() (*time.Time, error) {
	t, err := time.Parse(p.Timestamp)

	return t, errors.Wrapf(err, "invalid timestamp for parcel %v", p.TrackID)
}

func (e *Event) Time() (*time.Time, error) {
	t, err := time.Parse(e.Timestamp)

	return t, errors.Wrapf(err, "invalid timestamp for event %v", e.Code)
}
