/*
Package protocol holds the exchange state machines. The machines do
not move any state themselves; the agent does that. Their job is to
know which transitions the protocols permit, refuse the rest before a
byte reaches the agent, and hand legal intents on to the gateway.
Protocol-specific machines live in the subpackages, this package only
carries what they share.
*/
package protocol
