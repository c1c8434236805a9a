package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

func check(content string) []types.Issue {
	return New().Check(analyzer.NewFile("Vault.sol", content))
}

func ids(issues []types.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.RuleID
	}
	return out
}

func TestNew(t *testing.T) {
	assert.Equal(t, "solidity", New().Name)
	assert.Equal(t, []string{".sol"}, New().Extensions)
}

func TestReentrancy(t *testing.T) {
	content := "msg.sender.transfer(amount);\nbalances[msg.sender] = 0;\n"
	issues := check(content)
	require.NotEmpty(t, issues)
	assert.Equal(t, "REENTRANCY", issues[0].RuleID)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, types.SeverityCritical, issues[0].Severity)
}

func TestReentrancy_NoStateChangeAfter(t *testing.T) {
	assert.NotContains(t, ids(check("msg.sender.transfer(amount);\n}\n")), "REENTRANCY")
}

func TestMissingReentrancyGuard(t *testing.T) {
	content := "function withdraw() external payable {\n    msg.sender.transfer(1);\n}\n"
	assert.Contains(t, ids(check(content)), "MISSING_REENTRANCY_GUARD")

	guarded := "function withdraw() external payable nonReentrant {\n    msg.sender.transfer(1);\n}\n"
	assert.NotContains(t, ids(check(guarded)), "MISSING_REENTRANCY_GUARD")
}

func TestSingleLineChecks(t *testing.T) {
	assert.Equal(t, []string{"TX_ORIGIN"}, ids(check("owner = tx.origin")))
	assert.Equal(t, []string{"DELEGATECALL"}, ids(check("impl.delegatecall(data)")))
	assert.Equal(t, []string{"SELFDESTRUCT"}, ids(check("selfdestruct(owner)")))
	assert.Equal(t, []string{"APPROVE_FRONTRUN"}, ids(check("token.approve(spender)")))
}

func TestFloatingPragma(t *testing.T) {
	assert.Equal(t, []string{"FLOATING_PRAGMA"}, ids(check("pragma solidity ^0.8.19;")))
	assert.Empty(t, check("pragma solidity 0.8.19;"))
}

func TestIntegerOverflow(t *testing.T) {
	legacy := "pragma solidity 0.6.12;\nuint256 total\ntotal = total + 1\n"
	issues := check(legacy)
	assert.Contains(t, ids(issues), "INTEGER_OVERFLOW")

	withSafeMath := "pragma solidity 0.6.12;\nusing SafeMath for uint256;\ntotal = total + 1\n"
	assert.NotContains(t, ids(check(withSafeMath)), "INTEGER_OVERFLOW")

	modern := "pragma solidity 0.8.19;\nuint256 total\ntotal = total + 1\n"
	assert.NotContains(t, ids(check(modern)), "INTEGER_OVERFLOW")
}

func TestVisibility(t *testing.T) {
	assert.Equal(t, []string{"MISSING_VISIBILITY"}, ids(check("    function run() {")))
	assert.Empty(t, check("    function run() public {"))
	assert.Equal(t, []string{"PUBLIC_STATE"}, ids(check("uint public total;")))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, []string{"TIMESTAMP_MANIPULATION"}, ids(check("if (block.timestamp > deadline)")))
	assert.Empty(t, check("uint start = block.timestamp;"))
}

func TestGasLimit(t *testing.T) {
	assert.Contains(t, ids(check("for (uint i = 0; i < users.length; i++)")), "UNBOUNDED_LOOP")

	loop := "for (uint i = 0; i < n; i++) {\n    users[i].transfer(1);\n}\n"
	assert.Contains(t, ids(check(loop)), "TRANSFER_IN_LOOP")
}

func TestUncheckedCall(t *testing.T) {
	assert.Contains(t, ids(check("target.call(data);")), "UNCHECKED_CALL")
	assert.NotContains(t, ids(check("(bool success, ) = target.call(data);")), "UNCHECKED_CALL")
	assert.Contains(t, ids(check("payee.send(amount);")), "UNCHECKED_SEND")
	assert.NotContains(t, ids(check("require(payee.send(amount));")), "UNCHECKED_SEND")
}
