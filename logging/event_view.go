package logging

// EventView logs events with a fixed name through an EventLogger. It is used
// for avoiding to repeat the event name for a sequence of log calls, like all
// calls while handling one request.
type EventView struct {
	logger *EventLogger
	event  string
	// base holds fields that are merged in front of the data of each call.
	base Fields
}

// Event returns the bound event name.
func (v *EventView) Event() string {
	return v.event
}

// With returns a new EventView which logs the given fields with each event in
// addition to the data of the call. Data of the call overwrites base fields
// with the same key.
func (v *EventView) With(fields Fields) *EventView {
	base := make(Fields, 0, len(v.base)+len(fields))
	base = append(base, v.base...)
	for _, field := range fields {
		base.Set(field.Key, field.Value)
	}
	return &EventView{
		logger: v.logger,
		event:  v.event,
		base:   base,
	}
}

// Debug logs the bound event with DebugLevel.
func (v *EventView) Debug(data any) error {
	return v.logger.Log(DebugLevel, v.event, v.merge(data))
}

// Info logs the bound event with InfoLevel.
func (v *EventView) Info(data any) error {
	return v.logger.Log(InfoLevel, v.event, v.merge(data))
}

// Warn logs the bound event with WarnLevel.
func (v *EventView) Warn(data any) error {
	return v.logger.Log(WarnLevel, v.event, v.merge(data))
}

// Error logs the bound event with ErrorLevel.
func (v *EventView) Error(data any) error {
	return v.logger.Log(ErrorLevel, v.event, v.merge(data))
}

// Fatal logs the bound event with FatalLevel.
func (v *EventView) Fatal(data any) error {
	return v.logger.Log(FatalLevel, v.event, v.merge(data))
}

func (v *EventView) DebugTimed(data any, work Work) error {
	return v.logger.LogTimed(DebugLevel, v.event, v.merge(data), work)
}

func (v *EventView) InfoTimed(data any, work Work) error {
	return v.logger.LogTimed(InfoLevel, v.event, v.merge(data), work)
}

func (v *EventView) WarnTimed(data any, work Work) error {
	return v.logger.LogTimed(WarnLevel, v.event, v.merge(data), work)
}

func (v *EventView) ErrorTimed(data any, work Work) error {
	return v.logger.LogTimed(ErrorLevel, v.event, v.merge(data), work)
}

func (v *EventView) FatalTimed(data any, work Work) error {
	return v.logger.LogTimed(FatalLevel, v.event, v.merge(data), work)
}

// merge puts the base fields in front of the given data. Without base fields,
// data is returned as-is.
func (v *EventView) merge(data any) any {
	if len(v.base) == 0 {
		return data
	}
	merged := make(Fields, 0, len(v.base)+1)
	merged = append(merged, v.base...)
	if data == nil {
		return merged
	}
	if entries, ok := mappingEntries(data); ok {
		for _, entry := range entries {
			merged.Set(entry.Key, entry.Value)
		}
		return merged
	}
	merged.Set(MessageKey, data)
	return merged
}
