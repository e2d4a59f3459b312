package staking

// StakingABI covers the parts of the FutureCast staking contract this package calls.
// forecasts is the public mapping getter of older deployments, getForecast the explicit
// view of newer ones; a deployment exposes one or the other.
const StakingABI = `[
  {"type":"function","name":"stakeAndUnlock","stateMutability":"payable",
   "inputs":[{"name":"forecastId","type":"uint256"},{"name":"tier","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"forecasts","stateMutability":"view",
   "inputs":[{"name":"","type":"uint256"}],
   "outputs":[{"name":"id","type":"uint256"},{"name":"title","type":"string"},{"name":"createdAt","type":"uint256"}]},
  {"type":"function","name":"getForecast","stateMutability":"view",
   "inputs":[{"name":"forecastId","type":"uint256"}],
   "outputs":[{"name":"id","type":"uint256"},{"name":"title","type":"string"},{"name":"createdAt","type":"uint256"}]},
  {"type":"function","name":"userStake","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

// ERC20ABI is the subset of ERC-20 used by the flow.
const ERC20ABI = `[
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"approve","stateMutability":"nonpayable",
   "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`
