// Copyright 2015 Workiva, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ctrie provides Map, a concurrent, lock-free hash trie (a "Ctrie")
// with O(1) copy-on-write snapshots.
//
// A Map is safe for concurrent use by multiple goroutines without external
// locking: Get, Set, Delete, Update and the bulk traversal methods may all
// be called concurrently from any number of goroutines, and Snapshot /
// ReadOnlySnapshot produce independent forks in constant time regardless of
// how many entries the Map holds.
//
// The design follows the Ctrie algorithm described in "Concurrent Tries
// with Efficient Non-Blocking Snapshots" (Prokopec, Bronson, Bagwell,
// Odersky): a hash array mapped trie (HAMT) where every indirection node
// (I-node) carries a generation token alongside its mutable main-node
// pointer, and snapshots work by bumping the root's generation so that
// in-flight mutations are forced to clone their path before committing.
//
// No ordering, range queries, or durability are provided. See the package
// tests for the full set of documented invariants.
package ctrie
