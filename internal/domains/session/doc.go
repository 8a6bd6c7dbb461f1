// Package session keeps the adapter's view of the connected account and
// network in step with an injected wallet provider.
//
// Two producers write the state: caller-driven operations (Connect,
// Disconnect, Network) and the provider's account-change push. Each write is a
// single locked replace, so readers never see a half-applied transition.
// Caller operations are not serialized against each other; a Disconnect may
// race a pending Connect, and callers that need ordering must serialize
// themselves. A Connect whose account was cleared or replaced while it waited
// for the network answer does not store that network. No deadlines are
// imposed here: ctx is handed to the provider as is.
package session
