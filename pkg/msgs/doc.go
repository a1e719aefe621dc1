// Package msgs provides the telemetry messages a receiver publishes.
package msgs

// Messages are protobuf encoded and wrapped in Typed so a subscriber can
// decode them without knowing the topic.
//
// Producer: sbusd
// Consumer: sbusmon, ground station, vehicle controller
