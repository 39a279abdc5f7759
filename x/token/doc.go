/*
Package token implements a fungible token sub-ledger.

Each token type is identified by an address. A balance of one token type
held by one owner lives in an Account stored under the token and owner
addresses. Every account names an authority: the only address allowed to
move funds out of it. Regular accounts are controlled by their owner, while
accounts opened by other extensions on behalf of derived addresses are
controlled by whatever authority the extension picked.

The balance of an account may never go below zero and never overflow.
Accounts are never created implicitly by a transfer, the recipient must open
one first.
*/
package token
