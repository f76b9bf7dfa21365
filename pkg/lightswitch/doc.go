// Package lightswitch sends On/Off and Level Control commands from a light
// switch to every target in its binding table.
//
// A switch action is packaged as a ChangeContext and posted to the work
// queue. The binding manager then calls OnBindingChanged for each bound
// entry of the switch endpoint. Each call is classified as a group or
// unicast target, mapped to a cluster command through the Catalog and
// handed to the Invoker.
//
// Every entry point is expected to run on a single work queue, so no two
// dispatches run concurrently.
//
//	handler, err := lightswitch.NewHandler(lightswitch.Config{...})
//	handler.Init()
//	handler.Post(lightswitch.NewOnOffContext(1, onoff.CmdToggle, false))
package lightswitch
