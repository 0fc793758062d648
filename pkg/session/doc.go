/*
Package session implements viewer session management.

A session holds one viewer's navigation history and overlay state for as
long as that viewer is open. The Manager serializes cycles of the same
session, locally with reference-counted mutexes and across replicas with an
optional ports.DistributedLocker.
*/
package session
