// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the rent-pe-easy command-line client.
//
// Each invocation runs one subcommand (login, search, favorite-add, ...)
// against the HTTP API through an [adapter.ServerAdapter]. The token pair
// returned by register, login and refresh is persisted in a session file so
// that later invocations stay authenticated. An authenticated call that is
// rejected with 401 is retried once after refreshing the token pair.
package client
