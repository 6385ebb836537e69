// Package agent provides the Agent aggregate: a delivery agent bound to one warehouse.
//
// Agents move through Offline, CheckedIn and Assigned. Only CheckedIn agents are
// offered to the allocation engine; the engine moves them to Assigned and a
// release after delivery returns them to CheckedIn.
package agent
