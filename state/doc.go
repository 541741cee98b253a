// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage on top of a kv store.
//
// Writes are journaled in memory in stacked revisions, so a caller can take
// a checkpoint, mutate, and revert. Nothing reaches the kv store until Commit,
// which flushes the journal in one atomic batch.
package state
