/*
Package cache provides an interface to cache items. It should not be of any
concern to the callee where this cache is, simply that the cache exists and
will speed things up.

Eventual consistency of the cached items is promised, but nothing more. The
cache is best-effort throughout: a failed read is a miss, and a failed write
is logged and forgotten.
*/
package cache
