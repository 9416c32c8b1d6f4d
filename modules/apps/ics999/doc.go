/*
Package ics999 implements ICS-999, an IBC application that delivers a queue
of actions to a counterparty chain and executes it atomically.

A packet carries an ordered list of actions: token transfers, interchain
account registration, execution of messages by the interchain account and
queries. The receiving chain runs them one after the other on a branched
context and commits either all of their effects or none. The results, or
the error that aborted the queue, are returned in the acknowledgement. The
sending chain refunds every transferred token when the queue failed or the
packet timed out.

Each connection carries at most one ics999 channel. Tokens keep a trace of
the endpoints they travelled through, and vouchers are named
ics999/{hash of trace}.
*/
package ics999
